package stake_test

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/iov-one/stake"
	"github.com/iov-one/stake/errors"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressPrinting(t *testing.T) {
	Convey("test hexademical address printing", t, func() {
		b := []byte("ABCD123456LHB")
		addr := stake.Address(b)

		So(addr.String(), ShouldEqual, fmt.Sprintf("%X", b))
	})

	Convey("test nil address printing", t, func() {
		So(stake.Address(nil).String(), ShouldEqual, "(nil)")
	})

	Convey("test hexademical condition printing", t, func() {
		cond := stake.NewCondition("bet", "vault", []byte("ABCD123456LHB"))

		So(cond.String(), ShouldEqual, fmt.Sprintf("bet/vault/%X", []byte("ABCD123456LHB")))
	})
}

func TestConditionParse(t *testing.T) {
	Convey("a condition is split into its sections", t, func() {
		cond := stake.NewCondition("bet", "terms", []byte{0, 1, '/', 0x20})
		ext, typ, data, err := cond.Parse()
		So(err, ShouldBeNil)
		So(ext, ShouldEqual, "bet")
		So(typ, ShouldEqual, "terms")
		So(data, ShouldResemble, []byte{0, 1, '/', 0x20})
	})

	Convey("an invalid condition is rejected", t, func() {
		cond := stake.Condition("no-slashes")
		_, _, _, err := cond.Parse()
		So(errors.ErrInput.Is(err), ShouldBeTrue)
		So(errors.ErrInput.Is(cond.Validate()), ShouldBeTrue)
	})

	Convey("the address of a condition is a truncated digest", t, func() {
		a := stake.NewCondition("bet", "terms", []byte("x")).Address()
		b := stake.NewCondition("bet", "terms", []byte("y")).Address()
		So(len(a), ShouldEqual, stake.AddressLength)
		So(a.Equals(b), ShouldBeFalse)
		So(a.Validate(), ShouldBeNil)
	})
}

func TestAddressUnmarshalJSON(t *testing.T) {
	raw := []byte("twenty-bytes-address")
	rawHex := hex.EncodeToString(raw)

	b32, err := stake.Address(raw).Bech32()
	require.NoError(t, err)

	cases := map[string]struct {
		json     string
		wantErr  *errors.Error
		wantAddr stake.Address
	}{
		"default decoding": {
			json:     `"` + rawHex + `"`,
			wantAddr: stake.Address(raw),
		},
		"hex decoding": {
			json:     `"hex:` + rawHex + `"`,
			wantAddr: stake.Address(raw),
		},
		"bech32 decoding": {
			json:     `"` + b32 + `"`,
			wantAddr: stake.Address(raw),
		},
		"cond decoding": {
			json:     `"cond:foo/bar/636f6e646974696f6e64617461"`,
			wantAddr: stake.NewCondition("foo", "bar", []byte("conditiondata")).Address(),
		},
		"invalid address length": {
			json:    `"6865782d61646472"`,
			wantErr: errors.ErrInput,
		},
		"invalid condition format": {
			json:    `"cond:foo/636f6e646974696f6e64617461"`,
			wantErr: errors.ErrInput,
		},
		"invalid condition data": {
			json:    `"cond:foo/bar/zzzzz"`,
			wantErr: errors.ErrInput,
		},
		"unknown format": {
			json:    `"foobar:xxx"`,
			wantErr: errors.ErrType,
		},
		"zero address": {
			json:     `""`,
			wantAddr: nil,
		},
		"zero cond address": {
			json:     `"cond:"`,
			wantAddr: nil,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var a stake.Address
			err := json.Unmarshal([]byte(tc.json), &a)
			if !tc.wantErr.Is(err) {
				t.Fatalf("got error: %+v", err)
			}
			if err == nil {
				assert.Equal(t, tc.wantAddr, a)
			}
		})
	}
}

func TestAddressMarshalJSON(t *testing.T) {
	addr := stake.Address("twenty-bytes-address")
	raw, err := json.Marshal(addr)
	require.NoError(t, err)

	var got stake.Address
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, addr, got)
}

func TestConditionJSON(t *testing.T) {
	cond := stake.NewCondition("sigs", "ed25519", []byte{0xCA, 0xFE})
	raw, err := json.Marshal(cond)
	require.NoError(t, err)
	assert.Equal(t, `"sigs/ed25519/CAFE"`, string(raw))

	var got stake.Condition
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.True(t, cond.Equals(got))
}
