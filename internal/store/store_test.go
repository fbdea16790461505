package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestParseID(t *testing.T) {
	t.Run("valid hex round-trips", func(t *testing.T) {
		want := primitive.NewObjectID()
		got, err := parseID(want.Hex())
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("malformed hex is ErrInvalidID", func(t *testing.T) {
		for _, input := range []string{"", "zzz", "123", "not-an-object-id"} {
			_, err := parseID(input)
			assert.ErrorIs(t, err, ErrInvalidID, "input %q", input)
		}
	})
}

func TestHexID(t *testing.T) {
	oid := primitive.NewObjectID()
	assert.Equal(t, oid.Hex(), hexID(oid))
	assert.Empty(t, hexID(nil))
	assert.Empty(t, hexID("already-a-string"))
}

func TestServiceUpdate_OmitsOwnerField(t *testing.T) {
	// The update document must never carry providerEmail; ownership is
	// immutable after insert.
	update := ServiceUpdate{
		ServiceName: "City Tour",
		Image:       "https://img.example.com/tour.jpg",
		TourArea:    "Downtown",
		Price:       49.5,
		Description: "Two hour walking tour",
	}

	data, err := bson.Marshal(update)
	require.NoError(t, err)

	var doc bson.M
	require.NoError(t, bson.Unmarshal(data, &doc))

	assert.NotContains(t, doc, "providerEmail")
	assert.Equal(t, "City Tour", doc["serviceName"])
	assert.Equal(t, 49.5, doc["price"])
}
