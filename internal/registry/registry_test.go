package registry

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRegistry создает реестр с заглушенным логгером
func newTestRegistry() *Registry {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	return New(logger)
}

func TestRegister_CreatesCleanRecord(t *testing.T) {
	r := newTestRegistry()

	r.Register("nurse1", "sess-1")

	resp, ok := r.Get("nurse1")
	require.True(t, ok)
	assert.Equal(t, "nurse1", resp.ID)
	assert.Equal(t, "sess-1", resp.SessionID)
	assert.True(t, resp.Available)
	assert.Nil(t, resp.Location)
}

func TestRegister_SameIDReplacesSession(t *testing.T) {
	r := newTestRegistry()
	r.Register("nurse1", "sess-old")
	r.UpdateLocation("nurse1", 10, 20, true)

	// Перерегистрация - логический перехват, запись начинается с чистого состояния
	r.Register("nurse1", "sess-new")

	resp, ok := r.Get("nurse1")
	require.True(t, ok)
	assert.Equal(t, "sess-new", resp.SessionID)
	assert.Nil(t, resp.Location)
}

func TestDisconnect_StaleSessionDoesNotRemoveNewRegistration(t *testing.T) {
	r := newTestRegistry()
	r.Register("nurse1", "sess-old")
	r.Register("nurse1", "sess-new")

	// Запоздавший disconnect вытесненной сессии - no-op
	r.Disconnect("sess-old")

	resp, ok := r.Get("nurse1")
	require.True(t, ok)
	assert.Equal(t, "sess-new", resp.SessionID)
}

func TestDisconnect_RemovesExactlyMatchingResponder(t *testing.T) {
	r := newTestRegistry()
	r.Register("nurse1", "sess-1")
	r.Register("nurse2", "sess-2")

	r.Disconnect("sess-1")

	_, ok := r.Get("nurse1")
	assert.False(t, ok)
	_, ok = r.Get("nurse2")
	assert.True(t, ok)
}

func TestDisconnect_UnknownSessionIsNoop(t *testing.T) {
	r := newTestRegistry()
	r.Register("nurse1", "sess-1")

	r.Disconnect("sess-unknown")

	assert.Len(t, r.Snapshot(), 1)
}

func TestUpdateLocation_SetsLocationAndAvailability(t *testing.T) {
	r := newTestRegistry()
	r.Register("nurse1", "sess-1")

	r.UpdateLocation("nurse1", 55.75, 37.61, false)

	resp, ok := r.Get("nurse1")
	require.True(t, ok)
	require.NotNil(t, resp.Location)
	assert.Equal(t, 55.75, resp.Location.Latitude)
	assert.Equal(t, 37.61, resp.Location.Longitude)
	assert.False(t, resp.Available)
}

func TestUpdateLocation_UnknownIDIsNoop(t *testing.T) {
	r := newTestRegistry()
	r.Register("nurse1", "sess-1")

	r.UpdateLocation("ghost", 1, 2, true)

	snapshot := r.Snapshot()
	require.Len(t, snapshot, 1)
	assert.Equal(t, "nurse1", snapshot[0].ID)
	assert.Nil(t, snapshot[0].Location)
}

func TestRegister_SessionTakeoverReleasesOldID(t *testing.T) {
	r := newTestRegistry()
	r.Register("nurse1", "sess-1")

	// Та же сессия регистрируется под другим id - старый освобождается,
	// связь сессия<->медработник остается один к одному
	r.Register("nurse2", "sess-1")

	_, ok := r.Get("nurse1")
	assert.False(t, ok)
	resp, ok := r.Get("nurse2")
	require.True(t, ok)
	assert.Equal(t, "sess-1", resp.SessionID)
}

func TestSnapshot_ReturnsIsolatedCopies(t *testing.T) {
	r := newTestRegistry()
	r.Register("nurse1", "sess-1")
	r.UpdateLocation("nurse1", 10, 20, true)

	snapshot := r.Snapshot()
	require.Len(t, snapshot, 1)
	snapshot[0].Location.Latitude = 99
	snapshot[0].Available = false

	resp, ok := r.Get("nurse1")
	require.True(t, ok)
	assert.Equal(t, 10.0, resp.Location.Latitude)
	assert.True(t, resp.Available)
}

func TestSnapshot_SortedByID(t *testing.T) {
	r := newTestRegistry()
	r.Register("charlie", "sess-3")
	r.Register("alice", "sess-1")
	r.Register("bob", "sess-2")

	snapshot := r.Snapshot()
	require.Len(t, snapshot, 3)
	assert.Equal(t, "alice", snapshot[0].ID)
	assert.Equal(t, "bob", snapshot[1].ID)
	assert.Equal(t, "charlie", snapshot[2].ID)
}
