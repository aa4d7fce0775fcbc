package gconf

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/stake"
	"github.com/iov-one/stake/errors"
	"github.com/iov-one/stake/store"
	"github.com/iov-one/stake/weavetest/assert"
	amino "github.com/tendermint/go-amino"
)

var testCdc = amino.NewCodec()

type limits struct {
	Max   uint64        `json:"max"`
	Admin stake.Address `json:"admin"`
}

func (l *limits) Marshal() ([]byte, error) {
	return testCdc.MarshalBinaryBare(l)
}

func (l *limits) Unmarshal(raw []byte) error {
	*l = limits{}
	if len(raw) == 0 {
		return nil
	}
	return testCdc.UnmarshalBinaryBare(raw, l)
}

func (l *limits) Validate() error {
	if len(l.Admin) != 0 {
		return l.Admin.Validate()
	}
	return nil
}

func TestSaveLoad(t *testing.T) {
	admin := stake.NewAddress([]byte("admin"))

	cases := map[string]struct {
		Conf        *limits
		WantSaveErr *errors.Error
		WantLoadErr *errors.Error
	}{
		"full": {
			Conf: &limits{Max: 852151421, Admin: admin},
		},
		"zero value": {
			Conf: &limits{},
		},
		"invalid address cannot be saved": {
			Conf:        &limits{Admin: stake.Address("too short")},
			WantSaveErr: errors.ErrInput,
			WantLoadErr: errors.ErrNotFound,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()

			err := Save(db, "mypkg", tc.Conf)
			if tc.WantSaveErr != nil {
				assert.IsErr(t, tc.WantSaveErr, err)
			} else {
				assert.Nil(t, err)
			}

			var got limits
			err = Load(db, "mypkg", &got)
			if tc.WantLoadErr != nil {
				assert.IsErr(t, tc.WantLoadErr, err)
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, tc.Conf.Max, got.Max)
			assert.Equal(t, len(tc.Conf.Admin), len(got.Admin))
		})
	}
}

func TestInitConfig(t *testing.T) {
	cases := map[string]struct {
		genesis string
		wantErr *errors.Error
		wantMax uint64
	}{
		"configured": {
			genesis: `{"conf": {"mypkg": {"max": 7}}}`,
			wantMax: 7,
		},
		"missing package": {
			genesis: `{"conf": {"other": {"max": 7}}}`,
			wantErr: errors.ErrNotFound,
		},
		"malformed": {
			genesis: `{"conf": {"mypkg": {"max": "seven"}}}`,
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var opts stake.Options
			assert.Nil(t, json.Unmarshal([]byte(tc.genesis), &opts))

			db := store.MemStore()
			err := InitConfig(db, opts, "mypkg", &limits{})
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
				return
			}
			assert.Nil(t, err)

			var got limits
			assert.Nil(t, Load(db, "mypkg", &got))
			assert.Equal(t, tc.wantMax, got.Max)
		})
	}
}

func TestLoadOrZero(t *testing.T) {
	db := store.MemStore()

	got := limits{Max: 99}
	assert.Nil(t, LoadOrZero(db, "mypkg", &got))
	assert.Equal(t, limits{}, got)

	assert.Nil(t, Save(db, "mypkg", &limits{Max: 3}))
	assert.Nil(t, LoadOrZero(db, "mypkg", &got))
	assert.Equal(t, uint64(3), got.Max)
}
