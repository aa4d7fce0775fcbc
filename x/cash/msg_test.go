package cash

import (
	"strings"
	"testing"

	"github.com/iov-one/stake/errors"
	"github.com/iov-one/stake/weavetest"
	"github.com/iov-one/stake/weavetest/assert"
)

func TestSendMsgValidate(t *testing.T) {
	src := weavetest.NewCondition().Address()
	dst := weavetest.NewCondition().Address()

	cases := map[string]struct {
		msg     SendMsg
		wantErr *errors.Error
	}{
		"valid": {
			msg: SendMsg{Source: src, Destination: dst, Amount: 1, Memo: "lunch"},
		},
		"zero amount": {
			msg:     SendMsg{Source: src, Destination: dst},
			wantErr: errors.ErrAmount,
		},
		"missing source": {
			msg:     SendMsg{Destination: dst, Amount: 1},
			wantErr: errors.ErrInput,
		},
		"memo too long": {
			msg:     SendMsg{Source: src, Destination: dst, Amount: 1, Memo: strings.Repeat("x", maxMemoSize+1)},
			wantErr: errors.ErrInput,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.msg.Validate()
			if tc.wantErr == nil {
				assert.Nil(t, err)
				return
			}
			assert.IsErr(t, tc.wantErr, err)
		})
	}
}
