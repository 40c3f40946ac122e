package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/tidwall/buntdb"

	"github.com/oarkflow/logintheme"
	"github.com/oarkflow/logintheme/errors"
	"github.com/oarkflow/logintheme/models"
)

const (
	keyPrefix = "ctx:"
	pageIndex = "page"
)

var _ logintheme.ContextStore = (*BuntStore)(nil)

// NewBuntStore open a buntdb fixture store at path, ":memory:" for a store that is not persisted
func NewBuntStore(path string) (*BuntStore, error) {
	db, err := buntdb.Open(path)
	if err != nil {
		return nil, fmt.Errorf("store: open buntdb %s: %w", path, err)
	}
	err = db.Update(func(tx *buntdb.Tx) error {
		return tx.CreateIndex(pageIndex, keyPrefix+"*", buntdb.IndexJSON("pageId"))
	})
	if err != nil && err != buntdb.ErrIndexExists {
		_ = db.Close()
		return nil, fmt.Errorf("store: create index: %w", err)
	}
	return &BuntStore{db: db}, nil
}

// BuntStore fixture store backed by buntdb; values are the context JSON
type BuntStore struct {
	db *buntdb.DB
}

func contextKey(pageID logintheme.PageID, name string) string {
	return keyPrefix + pageID.String() + ":" + name
}

// Get according to the page and name for the stored context
func (bs *BuntStore) Get(ctx context.Context, pageID logintheme.PageID, name string) (*models.RenderContext, error) {
	var value string
	err := bs.db.View(func(tx *buntdb.Tx) error {
		v, err := tx.Get(contextKey(pageID, name))
		if err != nil {
			return err
		}
		value = v
		return nil
	})
	if err == buntdb.ErrNotFound {
		return nil, errors.ErrFixtureNotFound
	}
	if err != nil {
		return nil, err
	}

	var rc models.RenderContext
	if err := json.Unmarshal([]byte(value), &rc); err != nil {
		return nil, err
	}
	return &rc, nil
}

// Put set the context under name
func (bs *BuntStore) Put(ctx context.Context, name string, rc *models.RenderContext) error {
	b, err := json.Marshal(rc)
	if err != nil {
		return err
	}
	return bs.db.Update(func(tx *buntdb.Tx) error {
		_, _, err := tx.Set(contextKey(logintheme.PageID(rc.PageID), name), string(b), nil)
		return err
	})
}

// List the names stored for the page, sorted
func (bs *BuntStore) List(ctx context.Context, pageID logintheme.PageID) ([]string, error) {
	prefix := keyPrefix + pageID.String() + ":"
	var names []string
	err := bs.db.View(func(tx *buntdb.Tx) error {
		pivot := fmt.Sprintf(`{"pageId":%q}`, pageID.String())
		return tx.AscendEqual(pageIndex, pivot, func(key, value string) bool {
			if strings.HasPrefix(key, prefix) {
				names = append(names, strings.TrimPrefix(key, prefix))
			}
			return true
		})
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

// Close the underlying database
func (bs *BuntStore) Close() error {
	return bs.db.Close()
}
