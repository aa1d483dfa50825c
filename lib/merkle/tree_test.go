package merkle

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"boscoin.io/ballot/lib/common"
	"boscoin.io/ballot/lib/storage"
)

func makeTree(t *testing.T, st *storage.LevelDBBackend, items map[string]string) common.Hash {
	tree, err := NewTree(st, common.Hash{})
	require.NoError(t, err)

	for k, v := range items {
		require.NoError(t, tree.Update([]byte(k), []byte(v)))
	}

	root, err := tree.Commit()
	require.NoError(t, err)

	return root
}

func TestTreeEmptyRoot(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	tree, err := NewTree(st, common.Hash{})
	require.NoError(t, err)
	require.Equal(t, EmptyRoot, tree.Hash())

	root, err := tree.Commit()
	require.NoError(t, err)
	require.Equal(t, EmptyRoot, root)

	tree, err = NewTree(st, EmptyRoot)
	require.NoError(t, err)
	v, err := tree.Get([]byte("showme"))
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestTreeCommitAndReopen(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	items := map[string]string{}
	for i := 0; i < 50; i++ {
		items[fmt.Sprintf("key-%d", i)] = fmt.Sprintf("value-%d", i)
	}
	root := makeTree(t, st, items)
	require.NotEqual(t, EmptyRoot, root)

	tree, err := NewTree(st, root)
	require.NoError(t, err)
	require.Equal(t, root, tree.Hash())

	for k, v := range items {
		fetched, err := tree.Get([]byte(k))
		require.NoError(t, err)
		require.Equal(t, v, string(fetched))
	}

	// same content, same root
	st0 := storage.NewTestStorage()
	defer st0.Close()
	require.Equal(t, root, makeTree(t, st0, items))
}

func TestTreeDelete(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	root := makeTree(t, st, map[string]string{"showme": "1"})

	tree, err := NewTree(st, root)
	require.NoError(t, err)
	require.NoError(t, tree.Delete([]byte("showme")))
	require.Equal(t, EmptyRoot, tree.Hash())
}

func TestTreeInFork(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	fork, err := st.OpenBatch()
	require.NoError(t, err)

	root := makeTree(t, fork, map[string]string{"showme": "killme"})

	{ // nodes are not in the database before the fork is committed
		_, err := NewTree(st, root)
		require.Error(t, err)
	}

	require.NoError(t, fork.Commit())

	tree, err := NewTree(st, root)
	require.NoError(t, err)
	v, err := tree.Get([]byte("showme"))
	require.NoError(t, err)
	require.Equal(t, "killme", string(v))
}

func TestTreeProof(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	items := map[string]string{}
	for i := 0; i < 30; i++ {
		items[fmt.Sprintf("voter-%02d", i)] = fmt.Sprintf("weight-%d", i)
	}
	root := makeTree(t, st, items)

	tree, err := NewTree(st, root)
	require.NoError(t, err)

	{ // inclusion
		proof, err := tree.Prove([]byte("voter-07"))
		require.NoError(t, err)
		require.Equal(t, root, proof.Root)
		require.Equal(t, "weight-7", string(proof.Value))
		require.False(t, proof.IsAbsence())
		require.NoError(t, proof.Verify())
	}

	{ // absence
		proof, err := tree.Prove([]byte("voter-99"))
		require.NoError(t, err)
		require.True(t, proof.IsAbsence())
		require.NoError(t, proof.Verify())
	}

	{ // forged value
		proof, err := tree.Prove([]byte("voter-07"))
		require.NoError(t, err)
		proof.Value = []byte("weight-1000")
		require.Error(t, proof.Verify())
	}

	{ // proof against another root
		proof, err := tree.Prove([]byte("voter-07"))
		require.NoError(t, err)
		proof.Root = common.BytesToHash(common.MakeHash([]byte("findme")))
		require.Error(t, proof.Verify())
	}

	{ // missing nodes
		proof, err := tree.Prove([]byte("voter-07"))
		require.NoError(t, err)
		proof.Nodes = proof.Nodes[:len(proof.Nodes)-1]
		require.Error(t, proof.Verify())
	}
}

func TestTreeProofEmpty(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	tree, err := NewTree(st, common.Hash{})
	require.NoError(t, err)

	proof, err := tree.Prove([]byte("showme"))
	require.NoError(t, err)
	require.Equal(t, EmptyRoot, proof.Root)
	require.True(t, proof.IsAbsence())
	require.NoError(t, proof.Verify())
}
