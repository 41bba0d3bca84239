package inventory

import "github.com/construplan/construplan-api/internal/domain/entity"

// incompatiblePairs pares de clases de almacenamiento que no pueden convivir
// en la misma ubicación. La regla es simétrica.
var incompatiblePairs = map[entity.StorageClass][]entity.StorageClass{
	entity.StorageFlammable: {entity.StorageOxidizer},
	entity.StorageOxidizer:  {entity.StorageFlammable, entity.StorageCorrosive},
	entity.StorageCorrosive: {entity.StorageOxidizer},
}

// StorageCompatible reporta si dos clases de almacenamiento pueden compartir ubicación.
func StorageCompatible(a, b entity.StorageClass) bool {
	for _, c := range incompatiblePairs[a] {
		if c == b {
			return false
		}
	}
	return true
}

// FirstIncompatible devuelve la primera clase presente en la ubicación que es
// incompatible con class, o "" si todas son compatibles.
func FirstIncompatible(class entity.StorageClass, present []entity.StorageClass) entity.StorageClass {
	for _, p := range present {
		if !StorageCompatible(class, p) {
			return p
		}
	}
	return ""
}
