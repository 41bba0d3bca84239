package entity

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// StorageClass clasificación de seguridad para almacenamiento en bodega.
type StorageClass string

const (
	StorageInert     StorageClass = "INERT"     // materiales sin riesgo (agregados, acero)
	StorageFlammable StorageClass = "FLAMMABLE" // combustibles, solventes, pinturas
	StorageOxidizer  StorageClass = "OXIDIZER"  // agentes oxidantes (nitratos, peróxidos)
	StorageCorrosive StorageClass = "CORROSIVE" // ácidos, cal viva
)

// ItemSpecs ficha técnica por categoría. Unión etiquetada: cada categoría tiene
// su variante con campos tipados en lugar de un mapa JSON abierto.
type ItemSpecs interface {
	SpecsCategory() string
	Storage() StorageClass
}

// MaterialSpecs ficha de material de construcción.
type MaterialSpecs struct {
	BatchNumber  string       `json:"batch_number,omitempty"`
	Supplier     string       `json:"supplier,omitempty"`
	StorageClass StorageClass `json:"storage_class"`
}

func (MaterialSpecs) SpecsCategory() string  { return CategoryMaterial }
func (s MaterialSpecs) Storage() StorageClass { return orInert(s.StorageClass) }

// MachinerySpecs ficha de maquinaria: horómetro y placa.
type MachinerySpecs struct {
	HourMeter   decimal.Decimal `json:"hour_meter"`
	PlateNumber string          `json:"plate_number,omitempty"`
	Model       string          `json:"model,omitempty"`
}

func (MachinerySpecs) SpecsCategory() string { return CategoryMachinery }
func (MachinerySpecs) Storage() StorageClass { return StorageInert }

// FuelSpecs ficha de combustible: volumen por unidad y clase de almacenamiento.
type FuelSpecs struct {
	VolumeLiters decimal.Decimal `json:"volume_liters"`
	Octane       int             `json:"octane,omitempty"`
	StorageClass StorageClass    `json:"storage_class"`
}

func (FuelSpecs) SpecsCategory() string   { return CategoryFuel }
func (s FuelSpecs) Storage() StorageClass {
	if s.StorageClass == "" {
		return StorageFlammable
	}
	return s.StorageClass
}

// ToolSpecs ficha de herramienta menor.
type ToolSpecs struct {
	Brand        string `json:"brand,omitempty"`
	SerialNumber string `json:"serial_number,omitempty"`
}

func (ToolSpecs) SpecsCategory() string { return CategoryTool }
func (ToolSpecs) Storage() StorageClass { return StorageInert }

func orInert(c StorageClass) StorageClass {
	if c == "" {
		return StorageInert
	}
	return c
}

// specsEnvelope sobre JSON para persistir la unión etiquetada en una columna jsonb.
type specsEnvelope struct {
	Category string          `json:"category"`
	Data     json.RawMessage `json:"data"`
}

// MarshalSpecs serializa la ficha técnica con su etiqueta de categoría.
func MarshalSpecs(s ItemSpecs) ([]byte, error) {
	if s == nil {
		return nil, nil
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal specs: %w", err)
	}
	return json.Marshal(specsEnvelope{Category: s.SpecsCategory(), Data: data})
}

// UnmarshalSpecs reconstruye la variante concreta según la etiqueta de categoría.
func UnmarshalSpecs(raw []byte) (ItemSpecs, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var env specsEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("unmarshal specs envelope: %w", err)
	}
	switch env.Category {
	case CategoryMaterial:
		var s MaterialSpecs
		if err := json.Unmarshal(env.Data, &s); err != nil {
			return nil, fmt.Errorf("unmarshal material specs: %w", err)
		}
		return s, nil
	case CategoryMachinery:
		var s MachinerySpecs
		if err := json.Unmarshal(env.Data, &s); err != nil {
			return nil, fmt.Errorf("unmarshal machinery specs: %w", err)
		}
		return s, nil
	case CategoryFuel:
		var s FuelSpecs
		if err := json.Unmarshal(env.Data, &s); err != nil {
			return nil, fmt.Errorf("unmarshal fuel specs: %w", err)
		}
		return s, nil
	case CategoryTool:
		var s ToolSpecs
		if err := json.Unmarshal(env.Data, &s); err != nil {
			return nil, fmt.Errorf("unmarshal tool specs: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("categoría de specs desconocida: %q", env.Category)
	}
}
