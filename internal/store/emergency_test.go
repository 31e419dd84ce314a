package store

import (
	"testing"

	"github.com/google/uuid"
	"github.com/nurselink/emergency_dispatch/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreate_AssignsIDAndOpenStatus(t *testing.T) {
	s := NewEmergencyStore()

	created := s.Create(&models.Emergency{
		Title:        "Fire at warehouse",
		Latitude:     55.75,
		Longitude:    37.61,
		RadiusMeters: 1000,
	})

	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, models.StatusOpen, created.Status)
	assert.Empty(t, created.AssignedTo)
	assert.False(t, created.CreatedAt.IsZero())
}

func TestCreate_IDsAreUnique(t *testing.T) {
	s := NewEmergencyStore()

	first := s.Create(&models.Emergency{Title: "First"})
	second := s.Create(&models.Emergency{Title: "Second"})

	assert.NotEqual(t, first.ID, second.ID)
}

func TestAccept_UnknownIDLeavesStoreUnchanged(t *testing.T) {
	s := NewEmergencyStore()
	s.Create(&models.Emergency{Title: "Existing"})

	_, err := s.Accept(uuid.New(), "nurse1")

	require.ErrorIs(t, err, ErrEmergencyNotFound)
	list := s.List()
	require.Len(t, list, 1)
	assert.Equal(t, models.StatusOpen, list[0].Status)
}

func TestAccept_TransitionsToAssigned(t *testing.T) {
	s := NewEmergencyStore()
	created := s.Create(&models.Emergency{Title: "Fire"})

	em, err := s.Accept(created.ID, "nurse1")

	require.NoError(t, err)
	assert.Equal(t, models.StatusAssigned, em.Status)
	assert.Equal(t, "nurse1", em.AssignedTo)
}

func TestAccept_ReacceptOverwritesAssignee(t *testing.T) {
	s := NewEmergencyStore()
	created := s.Create(&models.Emergency{Title: "Fire"})

	_, err := s.Accept(created.ID, "nurse1")
	require.NoError(t, err)

	// Повторный accept без защиты перезаписывает исполнителя
	em, err := s.Accept(created.ID, "nurse2")
	require.NoError(t, err)
	assert.Equal(t, models.StatusAssigned, em.Status)
	assert.Equal(t, "nurse2", em.AssignedTo)
}

func TestGet_ReturnsCopy(t *testing.T) {
	s := NewEmergencyStore()
	created := s.Create(&models.Emergency{Title: "Fire"})

	em, err := s.Get(created.ID)
	require.NoError(t, err)
	em.Title = "Mutated"

	again, err := s.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Fire", again.Title)
}

func TestGet_UnknownID(t *testing.T) {
	s := NewEmergencyStore()

	_, err := s.Get(uuid.New())

	assert.ErrorIs(t, err, ErrEmergencyNotFound)
}

func TestList_OrderedByCreation(t *testing.T) {
	s := NewEmergencyStore()
	s.Create(&models.Emergency{Title: "First"})
	s.Create(&models.Emergency{Title: "Second"})
	s.Create(&models.Emergency{Title: "Third"})

	list := s.List()

	require.Len(t, list, 3)
	assert.Equal(t, "First", list[0].Title)
	assert.Equal(t, "Second", list[1].Title)
	assert.Equal(t, "Third", list[2].Title)
}
