package orm

import "github.com/iov-one/stake"

// ConsumeIterator will read all remaining data into an
// array and close the iterator
func ConsumeIterator(itr stake.Iterator) ([]stake.Model, error) {
	defer itr.Close()

	var res []stake.Model
	for itr.Valid() {
		res = append(res, stake.Pair(itr.Key(), itr.Value()))
		if err := itr.Next(); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// queryPrefix returns all models whose key starts with the prefix.
func queryPrefix(db stake.ReadOnlyKVStore, prefix []byte) ([]stake.Model, error) {
	itr, err := db.Iterator(prefix, prefixEnd(prefix))
	if err != nil {
		return nil, err
	}
	return ConsumeIterator(itr)
}

// prefixEnd returns the smallest key that is greater than all keys with the
// given prefix, or nil if there is none.
func prefixEnd(prefix []byte) []byte {
	end := make([]byte, len(prefix))
	copy(end, prefix)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xFF {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}
