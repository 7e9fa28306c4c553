// Copyright 2020-2021 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package catalog

import (
	"sync"
	"time"

	"github.com/boltdb/bolt"
	uuid "github.com/satori/go.uuid"
)

var connectionsBucket = []byte("connections")

// connectionRegistry binds a stable connection id to each table name the
// planner has ever scanned, minting a new id with a random (v4) UUID on
// first use. LogicalProgram.ConnectionIDs is built from these bindings, and
// the runtime correlates connector connections across deployments using
// them, so they must survive planner restarts.
type connectionRegistry struct {
	db *bolt.DB
	// mem backs the in-memory variant used by tests and embedders that
	// don't want a file on disk; db is nil in that case.
	mem   map[string]string
	memMu sync.Mutex
}

func openConnectionRegistry(path string) (*connectionRegistry, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(connectionsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &connectionRegistry{db: db}, nil
}

func newInMemoryConnectionRegistry() *connectionRegistry {
	return &connectionRegistry{mem: make(map[string]string)}
}

func (r *connectionRegistry) bind(tableName string) (string, error) {
	if r.db == nil {
		r.memMu.Lock()
		defer r.memMu.Unlock()
		if id, ok := r.mem[tableName]; ok {
			return id, nil
		}
		id := uuid.NewV4().String()
		r.mem[tableName] = id
		return id, nil
	}

	var id string
	err := r.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(connectionsBucket)
		if existing := b.Get([]byte(tableName)); existing != nil {
			id = string(existing)
			return nil
		}
		id = uuid.NewV4().String()
		return b.Put([]byte(tableName), []byte(id))
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

func (r *connectionRegistry) close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}
