// Copyright (c) 2026 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package lvldb

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelDB(t *testing.T) {
	var (
		key        = []byte("123")
		value      = []byte("456")
		invalidKey = []byte("abc")
	)

	disk, err := New(filepath.Join(t.TempDir(), "main.db"), Options{16, 16})
	require.NoError(t, err)
	defer disk.Close()

	mem, err := NewMem()
	require.NoError(t, err)
	defer mem.Close()

	for _, db := range []*LevelDB{disk, mem} {
		assert.NoError(t, db.Put(key, value))

		got, err := db.Get(key)
		assert.NoError(t, err)
		assert.Equal(t, value, got)

		has, err := db.Has(invalidKey)
		assert.NoError(t, err)
		assert.False(t, has)

		_, err = db.Get(invalidKey)
		assert.True(t, db.IsNotFound(err))

		batch := db.NewBatch()
		assert.NoError(t, batch.Delete(key))
		assert.NoError(t, batch.Put(invalidKey, value))
		assert.Equal(t, 2, batch.Len())
		assert.NoError(t, batch.Write())

		_, err = db.Get(key)
		assert.True(t, db.IsNotFound(err))
		got, err = db.Get(invalidKey)
		assert.NoError(t, err)
		assert.Equal(t, value, got)
	}
}
