// Copyright (C) 2024 XELIS
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package database

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sort"

	"p2put/log"
	"p2put/pixel"
	"p2put/util"
	"p2put/wire"

	"github.com/duggavo/serializer"
	bolt "go.etcd.io/bbolt"
)

var ADDRESSES = []byte("addresses")

var ErrNotFound = errors.New("address not found")

// Record is a generated address and the pixel it paints.
type Record struct {
	Address string      `json:"address"`
	Pixel   pixel.Pixel `json:"pixel"`
	Created uint64      `json:"created"`
	Hits    uint64      `json:"hits"`
}

// Serialize encodes the record value: the pixel payload, the creation time
// (uint64) and the hit counter as a varint. The address is the key.
func (r Record) Serialize() []byte {
	s := serializer.Serializer{
		Endian: binary.BigEndian,
	}

	s.AddFixedByteArray(r.Pixel.Serialize(), pixel.PAYLOAD_LENGTH)
	s.AddUint64(r.Created)

	return wire.AppendVarint(s.Data, r.Hits)
}

func Deserialize(addr string, data []byte) (Record, error) {
	r := wire.NewReader(data)

	px, err := pixel.FromReader(r)
	if err != nil {
		return Record{}, err
	}
	created, err := r.Uint64()
	if err != nil {
		return Record{}, err
	}
	hits, err := r.Varint()
	if err != nil {
		return Record{}, err
	}
	if r.Remaining() != 0 {
		return Record{}, fmt.Errorf("record %s: %d trailing bytes", addr, r.Remaining())
	}

	return Record{
		Address: addr,
		Pixel:   px,
		Created: created,
		Hits:    hits,
	}, nil
}

// Store keeps every address handed out, so painted pixels can be looked up
// when the payment shows up on chain.
type Store struct {
	db *bolt.DB
}

func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, bolt.DefaultOptions)
	if err != nil {
		return nil, err
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(ADDRESSES)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Put records that addr was generated for px. Repeated calls for the same
// address keep the creation time and increment the hit counter.
func (s *Store) Put(addr string, px pixel.Pixel) (Record, error) {
	var rec Record

	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(ADDRESSES)

		rec = Record{
			Address: addr,
			Pixel:   px,
			Created: util.Time(),
		}

		if v := b.Get([]byte(addr)); v != nil {
			old, err := Deserialize(addr, v)
			if err != nil {
				return err
			}
			if old.Pixel != px {
				return fmt.Errorf("address %s already maps to pixel %+v", addr, old.Pixel)
			}
			rec.Created = old.Created
			rec.Hits = old.Hits
		}
		rec.Hits++

		return b.Put([]byte(addr), rec.Serialize())
	})
	if err != nil {
		return Record{}, err
	}

	log.Devf("stored %s hits %d", addr, rec.Hits)
	return rec, nil
}

func (s *Store) Get(addr string) (Record, error) {
	var rec Record

	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(ADDRESSES).Get([]byte(addr))
		if v == nil {
			return fmt.Errorf("%w: %s", ErrNotFound, addr)
		}

		var err error
		rec, err = Deserialize(addr, v)
		return err
	})

	return rec, err
}

// ForCoord returns every record painting coord, oldest first.
func (s *Store) ForCoord(coord pixel.Coord) ([]Record, error) {
	recs := make([]Record, 0)

	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(ADDRESSES).ForEach(func(k, v []byte) error {
			rec, err := Deserialize(string(k), v)
			if err != nil {
				return err
			}
			if rec.Pixel.Coord == coord {
				recs = append(recs, rec)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Created < recs[j].Created
	})

	return recs, nil
}
