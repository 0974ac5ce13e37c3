package catalog

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.db")
	s, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestCreateCollectionAndSchemaRoundTrip(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.CreateCollection("widgets"))
	require.ErrorIs(t, s.CreateCollection("widgets"), ErrAlreadyExists)

	schema := &Schema{
		Name:               "widgets",
		Version:            1,
		Fields:             []Field{{Name: "id", Type: FieldTypeString}, {Name: "count", Type: FieldTypeInt32}},
		PartitionKeyFields: []string{"id"},
	}
	require.NoError(t, s.PutSchema("widgets", schema))
	require.ErrorIs(t, s.PutSchema("widgets", schema), ErrAlreadyExists)

	got, err := s.GetSchema("widgets", 1)
	require.NoError(t, err)
	require.Equal(t, schema, got)

	latest, err := s.LatestSchema("widgets")
	require.NoError(t, err)
	require.Equal(t, schema, latest)

	_, err = s.GetSchema("widgets", 2)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestLatestSchemaNotFoundBeforeAnySchema(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.CreateCollection("widgets"))

	_, err := s.LatestSchema("widgets")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = s.LatestSchema("never-created")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestListCollectionsAndVersions(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.CreateCollection("a"))
	require.NoError(t, s.CreateCollection("b"))

	names, err := s.ListCollections()
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, names)

	require.NoError(t, s.PutSchema("a", &Schema{Name: "a", Version: 1}))
	require.NoError(t, s.PutSchema("a", &Schema{Name: "a", Version: 2}))

	versions, err := s.ListSchemaVersions("a")
	require.NoError(t, err)
	require.Equal(t, []int32{1, 2}, versions)
}
