package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/construplan/construplan-api/internal/domain/entity"
	"github.com/construplan/construplan-api/internal/domain/inventory"
)

func TestStorageCompatible(t *testing.T) {
	tests := []struct {
		name string
		a, b entity.StorageClass
		ok   bool
	}{
		{"inerte con todo", entity.StorageInert, entity.StorageFlammable, true},
		{"combustible con oxidante", entity.StorageFlammable, entity.StorageOxidizer, false},
		{"oxidante con combustible (simétrico)", entity.StorageOxidizer, entity.StorageFlammable, false},
		{"oxidante con corrosivo", entity.StorageOxidizer, entity.StorageCorrosive, false},
		{"combustible con combustible", entity.StorageFlammable, entity.StorageFlammable, true},
		{"corrosivo con inerte", entity.StorageCorrosive, entity.StorageInert, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.ok, inventory.StorageCompatible(tt.a, tt.b))
		})
	}
}

func TestFirstIncompatible(t *testing.T) {
	present := []entity.StorageClass{entity.StorageInert, entity.StorageOxidizer}
	got := inventory.FirstIncompatible(entity.StorageFlammable, present)
	assert.Equal(t, entity.StorageOxidizer, got)

	assert.Equal(t, entity.StorageClass(""),
		inventory.FirstIncompatible(entity.StorageInert, present))
}
