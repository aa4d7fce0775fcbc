package stake

import (
	"github.com/iov-one/stake/errors"
)

// Msg is a single requested state change, such as making or settling a
// bet. Signatures live in the enclosing Tx, never in the Msg.
type Msg interface {
	// Path routes the message to its handler. It must match
	// [0-9A-Za-z_\-/]+ and is conventionally "<extension>/<action>".
	Path() string

	// Validate checks the message in isolation, without reading state.
	Validate() error
}

type Marshaller interface {
	Marshal() ([]byte, error)
}

// Persistent is implemented by pointers to serializable types. Value types
// that can only be encoded satisfy Marshaller.
type Persistent interface {
	Marshaller
	Unmarshal([]byte) error
}

// Tx is what a client submits: one Msg plus whatever the decorators need
// to authenticate it.
type Tx interface {
	GetMsg() (Msg, error)
}

// TxDecoder parses raw transaction bytes.
type TxDecoder func(raw []byte) (Tx, error)

// GetPath returns the message path of tx or "(missing)" when it carries
// no usable message.
func GetPath(tx Tx) string {
	if msg, err := tx.GetMsg(); err == nil && msg != nil {
		return msg.Path()
	}
	return "(missing)"
}

// LoadMsg validates the message of tx and copies it into dst, which must
// be a pointer to the concrete message type.
func LoadMsg(tx Tx, dst interface{}) error {
	msg, err := tx.GetMsg()
	switch {
	case err != nil:
		return errors.Wrap(err, "read message")
	case msg == nil:
		return errors.Wrap(errors.ErrState, "nil message")
	}
	if err := msg.Validate(); err != nil {
		return errors.Wrap(err, "invalid message")
	}
	return setMsg(dst, msg)
}
