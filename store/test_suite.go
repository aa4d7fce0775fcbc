package store

import (
	"bytes"
	"crypto/rand"
	"sort"
	"testing"

	"github.com/iov-one/stake/weavetest/assert"
)

// TestSuite runs the same KVStore contract checks against any backend.
// Backend packages call its methods from their own tests.
type TestSuite struct {
	newStore TestStoreConstructor
}

// TestStoreConstructor returns a fresh empty store and a function that
// releases it.
type TestStoreConstructor func() (base CacheableKVStore, cleanup func())

func NewTestSuite(constructor TestStoreConstructor) *TestSuite {
	return &TestSuite{newStore: constructor}
}

// GetSet checks visibility of writes through nested caches.
func (s *TestSuite) GetSet(t *testing.T) {
	base, cleanup := s.newStore()
	defer cleanup()

	record, recordVal := []byte("bet:0001"), []byte("open")
	s.AssertGetHas(t, base, record, nil, false)
	assert.Nil(t, base.Set(record, recordVal))
	s.AssertGetHas(t, base, record, recordVal, true)

	cache := base.CacheWrap()
	s.AssertGetHas(t, cache, record, recordVal, true)

	vault, vaultVal := []byte("cash:vault"), []byte("200")
	assert.Nil(t, cache.Set(vault, vaultVal))
	s.AssertGetHas(t, cache, vault, vaultVal, true)
	s.AssertGetHas(t, base, vault, nil, false)

	assert.Nil(t, cache.Write())
	s.AssertGetHas(t, base, record, recordVal, true)
	s.AssertGetHas(t, base, vault, vaultVal, true)

	dropped := base.CacheWrap()
	assert.Nil(t, dropped.Set([]byte("bet:0002"), []byte("open")))
	dropped.Discard()
	s.AssertGetHas(t, base, []byte("bet:0002"), nil, false)

	closing := base.CacheWrap()
	assert.Nil(t, closing.Delete(record))
	assert.Nil(t, closing.Write())
	s.AssertGetHas(t, base, record, nil, false)
	s.AssertGetHas(t, base, vault, vaultVal, true)
}

// CacheConflicts checks that a cache can overwrite and delete values of
// its parent without the parent seeing it before Write.
func (s *TestSuite) CacheConflicts(t *testing.T) {
	keys := randKeys(3, 16)
	vals := randKeys(4, 40)

	base, cleanup := s.newStore()
	defer cleanup()
	apply(t, base, SetOp(keys[0], vals[0]), SetOp(keys[1], vals[1]))

	child := base.CacheWrap()
	apply(t, child, SetOp(keys[0], vals[2]), SetOp(keys[2], vals[3]), DelOp(keys[1]))

	before := []Model{Pair(keys[0], vals[0]), Pair(keys[1], vals[1]), Pair(keys[2], nil)}
	after := []Model{Pair(keys[0], vals[2]), Pair(keys[1], nil), Pair(keys[2], vals[3])}

	s.assertModels(t, base, before)
	s.assertModels(t, child, after)
	assert.Nil(t, child.Write())
	s.assertModels(t, base, after)
}

// FuzzIterator checks ranges over random data, with random deletes of
// missing keys mixed in.
func (s *TestSuite) FuzzIterator(t *testing.T) {
	const size = 40

	childData := randModels(size, 8, 40)
	childOps := append(setOps(childData), delOps(randModels(10, 8, 40))...)
	child := sortModels(childData)

	parentData := randModels(size, 8, 40)
	parentOps := append(setOps(parentData), delOps(randModels(10, 8, 40))...)
	all := sortModels(append(append([]Model{}, childData...), parentData...))

	cases := map[string]iterCase{
		"child over empty parent": {
			child: childOps,
			queries: []rangeQuery{
				{nil, nil, false, child},
				{child[5].Key, nil, false, child[5:]},
				{nil, child[30].Key, false, child[:30]},
				{child[12].Key, child[25].Key, false, child[12:25]},
				{nil, nil, true, reverse(child)},
				{child[33].Key, nil, true, reverse(child[33:])},
				{nil, child[21].Key, true, reverse(child[:21])},
				{child[4].Key, child[27].Key, true, reverse(child[4:27])},
			},
		},
		"child merged with parent": {
			pre:   parentOps,
			child: childOps,
			queries: []rangeQuery{
				{nil, nil, false, all},
				{all[11].Key, nil, false, all[11:]},
				{all[20].Key, all[61].Key, false, all[20:61]},
				{nil, nil, true, reverse(all)},
				{nil, all[15].Key, true, reverse(all[:15])},
				{all[3].Key, all[50].Key, true, reverse(all[3:50])},
			},
		},
	}
	s.runIterCases(t, cases)
}

// IteratorWithConflicts checks that iteration shows child overwrites and
// hides child deletes.
func (s *TestSuite) IteratorWithConflicts(t *testing.T) {
	ms := randModels(6, 20, 100)
	a, a2, b, b2, c, d := ms[0], ms[1], ms[2], ms[3], ms[4], ms[5]
	a2.Key = a.Key
	b2.Key = b.Key

	three := sortModels([]Model{a, b, c})
	replaced := sortModels([]Model{a2, b2, c, d})

	cases := map[string]iterCase{
		"parent only": {
			pre: setOps([]Model{a, b, c}),
			queries: []rangeQuery{
				{nil, nil, false, three},
				{three[1].Key, three[2].Key, false, three[1:2]},
				{nil, nil, true, reverse(three)},
			},
		},
		"disjoint parent and child": {
			pre:   setOps([]Model{a, b}),
			child: setOps([]Model{c}),
			queries: []rangeQuery{
				{nil, nil, false, three},
				{nil, nil, true, reverse(three)},
			},
		},
		"child overwrites parent": {
			pre:   setOps([]Model{a, b, c}),
			child: setOps([]Model{a2, b2, d}),
			queries: []rangeQuery{
				{nil, nil, false, replaced},
				{replaced[1].Key, replaced[3].Key, false, replaced[1:3]},
				{nil, nil, true, reverse(replaced)},
			},
		},
		"child deletes parent": {
			pre:   setOps([]Model{a, c, d}),
			child: delOps([]Model{a, b, d}),
			queries: []rangeQuery{
				{nil, nil, false, []Model{c}},
				{nil, nil, true, []Model{c}},
				{nil, c.Key, false, nil},
			},
		},
	}
	s.runIterCases(t, cases)
}

func (s *TestSuite) AssertGetHas(t testing.TB, kv ReadOnlyKVStore, key, val []byte, has bool) {
	t.Helper()
	got, err := kv.Get(key)
	assert.Nil(t, err)
	assert.Equal(t, val, got)
	exists, err := kv.Has(key)
	assert.Nil(t, err)
	assert.Equal(t, has, exists)
}

// assertModels checks every model, a nil value means the key is absent.
func (s *TestSuite) assertModels(t testing.TB, kv ReadOnlyKVStore, models []Model) {
	t.Helper()
	for _, m := range models {
		s.AssertGetHas(t, kv, m.Key, m.Value, m.Value != nil)
	}
}

func (s *TestSuite) runIterCases(t *testing.T, cases map[string]iterCase) {
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			base, cleanup := s.newStore()
			defer cleanup()
			tc.verify(t, base)
		})
	}
}

type iterCase struct {
	pre     []Op
	child   []Op
	queries []rangeQuery
}

type rangeQuery struct {
	start, end []byte
	reverse    bool
	expected   []Model
}

func (tc iterCase) verify(t testing.TB, base CacheableKVStore) {
	t.Helper()
	apply(t, base, tc.pre...)
	child := base.CacheWrap()
	apply(t, child, tc.child...)

	for _, q := range tc.queries {
		got := readRange(t, child, q)
		if len(got) != len(q.expected) {
			t.Fatalf("want %d models, got %d", len(q.expected), len(got))
		}
		for i := range got {
			if !bytes.Equal(q.expected[i].Key, got[i].Key) {
				t.Fatalf("key %d: want %X, got %X", i, q.expected[i].Key, got[i].Key)
			}
			assert.Equal(t, q.expected[i].Value, got[i].Value)
		}
	}
}

func readRange(t testing.TB, kv ReadOnlyKVStore, q rangeQuery) []Model {
	var (
		it  Iterator
		err error
	)
	if q.reverse {
		it, err = kv.ReverseIterator(q.start, q.end)
	} else {
		it, err = kv.Iterator(q.start, q.end)
	}
	assert.Nil(t, err)
	defer it.Close()

	var res []Model
	for ; it.Valid(); assert.Nil(t, it.Next()) {
		res = append(res, Pair(it.Key(), it.Value()))
	}
	return res
}

func apply(t testing.TB, kv SetDeleter, ops ...Op) {
	t.Helper()
	for _, op := range ops {
		assert.Nil(t, op.Apply(kv))
	}
}

func randBytes(n int) []byte {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return b
}

func randKeys(count, size int) [][]byte {
	keys := make([][]byte, count)
	for i := range keys {
		keys[i] = randBytes(size)
	}
	return keys
}

func randModels(count, keySize, valueSize int) []Model {
	models := make([]Model, count)
	for i := range models {
		models[i] = Pair(randBytes(keySize), randBytes(valueSize))
	}
	return models
}

func reverse(models []Model) []Model {
	res := make([]Model, len(models))
	for i, m := range models {
		res[len(models)-1-i] = m
	}
	return res
}

func sortModels(models []Model) []Model {
	res := append([]Model(nil), models...)
	sort.Slice(res, func(i, j int) bool {
		return bytes.Compare(res[i].Key, res[j].Key) < 0
	})
	return res
}

func setOps(models []Model) []Op {
	ops := make([]Op, len(models))
	for i, m := range models {
		ops[i] = SetOp(m.Key, m.Value)
	}
	return ops
}

func delOps(models []Model) []Op {
	ops := make([]Op, len(models))
	for i, m := range models {
		ops[i] = DelOp(m.Key)
	}
	return ops
}
