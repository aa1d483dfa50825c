package index

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"boscoin.io/ballot/lib/common"
	"boscoin.io/ballot/lib/merkle"
	"boscoin.io/ballot/lib/storage"
)

type item struct {
	Subject string `json:"subject"`
	Count   uint64 `json:"count"`
}

func TestMapIndex(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	m := NewMapIndex(st, "test.map")

	root, err := m.Root()
	require.NoError(t, err)
	require.Equal(t, merkle.EmptyRoot, root)

	var fetched item
	found, err := m.Get([]byte("showme"), &fetched)
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, m.Put([]byte("showme"), item{Subject: "triss", Count: 1}))

	found, err = m.Get([]byte("showme"), &fetched)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, item{Subject: "triss", Count: 1}, fetched)

	has, err := m.Has([]byte("showme"))
	require.NoError(t, err)
	require.True(t, has)

	root0, err := m.Root()
	require.NoError(t, err)
	require.NotEqual(t, root, root0)

	require.NoError(t, m.Remove([]byte("showme")))
	has, err = m.Has([]byte("showme"))
	require.NoError(t, err)
	require.False(t, has)

	root1, err := m.Root()
	require.NoError(t, err)
	require.Equal(t, merkle.EmptyRoot, root1)
}

func TestMapIndexProof(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	m := NewMapIndex(st, "test.map")
	for i := 0; i < 10; i++ {
		require.NoError(t, m.Put([]byte(fmt.Sprintf("key-%d", i)), item{Count: uint64(i)}))
	}

	root, err := m.Root()
	require.NoError(t, err)

	proof, err := m.GetWithProof([]byte("key-3"))
	require.NoError(t, err)
	require.Equal(t, root, proof.Root)
	require.NoError(t, proof.Verify())

	var proved item
	require.NoError(t, json.Unmarshal(proof.Value, &proved))
	require.Equal(t, uint64(3), proved.Count)

	absence, err := m.GetWithProof([]byte("key-99"))
	require.NoError(t, err)
	require.True(t, absence.IsAbsence())
	require.NoError(t, absence.Verify())
}

func TestMapIndexIsolatedByName(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	a := NewMapIndex(st, "test.a")
	b := NewMapIndex(st, "test.b")

	require.NoError(t, a.Put([]byte("showme"), 1))

	has, err := b.Has([]byte("showme"))
	require.NoError(t, err)
	require.False(t, has)
}

func TestListIndex(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	l := NewListIndex(st, "test.list")

	n, err := l.Len()
	require.NoError(t, err)
	require.Equal(t, uint64(0), n)

	var last item
	found, err := l.Last(&last)
	require.NoError(t, err)
	require.False(t, found)

	for i, subject := range []string{"triss", "ciri", "yennefer"} {
		position, err := l.Push(item{Subject: subject})
		require.NoError(t, err)
		require.Equal(t, uint64(i), position)
	}

	n, err = l.Len()
	require.NoError(t, err)
	require.Equal(t, uint64(3), n)

	found, err = l.Last(&last)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "yennefer", last.Subject)

	require.NoError(t, l.Set(1, item{Subject: "ciri", Count: 100}))

	var fetched item
	found, err = l.Get(1, &fetched)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, uint64(100), fetched.Count)

	found, err = l.Get(3, &fetched)
	require.NoError(t, err)
	require.False(t, found)

	require.Error(t, l.Set(3, item{}))
}

func TestListIndexIterate(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	l := NewListIndex(st, "test.list")
	for i := 0; i < 10; i++ {
		_, err := l.Push(item{Count: uint64(i)})
		require.NoError(t, err)
	}

	var collected []uint64
	err := l.Iterate(3, 4, func(i uint64, raw []byte) (bool, error) {
		var v item
		common.MustUnmarshalJSON(raw, &v)
		require.Equal(t, i, v.Count)
		collected = append(collected, v.Count)
		return true, nil
	})
	require.NoError(t, err)
	require.Equal(t, []uint64{3, 4, 5, 6}, collected)

	collected = nil
	err = l.Iterate(8, 0, func(i uint64, raw []byte) (bool, error) {
		collected = append(collected, i)
		return true, nil
	})
	require.NoError(t, err)
	require.Equal(t, []uint64{8, 9}, collected)

	collected = nil
	err = l.Iterate(20, 5, func(i uint64, raw []byte) (bool, error) {
		collected = append(collected, i)
		return true, nil
	})
	require.NoError(t, err)
	require.Empty(t, collected)
}

func TestListIndexProof(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	l := NewListIndex(st, "test.list")
	for i := 0; i < 5; i++ {
		_, err := l.Push(item{Count: uint64(i)})
		require.NoError(t, err)
	}

	proof, err := l.GetWithProof(2)
	require.NoError(t, err)
	require.NoError(t, proof.Verify())
	require.False(t, proof.IsAbsence())

	proof, err = l.GetWithProof(7)
	require.NoError(t, err)
	require.True(t, proof.IsAbsence())
}

func TestKeySetIndex(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	s := NewKeySetIndex(st, "test.set")

	contains, err := s.Contains([]byte("alice"))
	require.NoError(t, err)
	require.False(t, contains)

	require.NoError(t, s.Insert([]byte("alice")))
	root, err := s.Root()
	require.NoError(t, err)

	// inserting twice does not change the set
	require.NoError(t, s.Insert([]byte("alice")))
	root0, err := s.Root()
	require.NoError(t, err)
	require.Equal(t, root, root0)

	contains, err = s.Contains([]byte("alice"))
	require.NoError(t, err)
	require.True(t, contains)

	proof, err := s.GetWithProof([]byte("alice"))
	require.NoError(t, err)
	require.NoError(t, proof.Verify())
}

func TestEntry(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	e := NewEntry(st, "test.entry")

	var v item
	found, err := e.Get(&v)
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, e.Set(item{Subject: "alice"}))
	require.NoError(t, e.Set(item{Subject: "bob"}))

	found, err = e.Get(&v)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "bob", v.Subject)

	require.NoError(t, e.Clear())
	found, err = e.Get(&v)
	require.NoError(t, err)
	require.False(t, found)
}

func TestIndexInFork(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	fork, err := st.OpenBatch()
	require.NoError(t, err)

	require.NoError(t, NewMapIndex(fork, "test.map").Put([]byte("showme"), 1))
	require.NoError(t, fork.Discard())

	has, err := NewMapIndex(st, "test.map").Has([]byte("showme"))
	require.NoError(t, err)
	require.False(t, has)

	root, err := NewMapIndex(st, "test.map").Root()
	require.NoError(t, err)
	require.Equal(t, merkle.EmptyRoot, root)
}
