package bet

import (
	"github.com/iov-one/stake"
	"github.com/iov-one/stake/errors"
	"github.com/iov-one/stake/gconf"
)

const confPkg = "bet"

// Configuration of the bet extension.
type Configuration struct {
	// RecordCollateral is paid by the maker when a bet is made and
	// returned when the record is closed.
	RecordCollateral uint64 `json:"record_collateral"`
}

var _ gconf.Configuration = (*Configuration)(nil)

func (c *Configuration) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(c)
}

func (c *Configuration) Unmarshal(raw []byte) error {
	*c = Configuration{}
	if len(raw) == 0 {
		return nil
	}
	return cdc.UnmarshalBinaryBare(raw, c)
}

func (c *Configuration) Validate() error {
	return nil
}

// loadConf returns the stored configuration. A missing configuration is
// the zero configuration.
func loadConf(db stake.ReadOnlyKVStore) (Configuration, error) {
	var c Configuration
	if err := gconf.LoadOrZero(db, confPkg, &c); err != nil {
		return c, errors.Wrap(err, "load configuration")
	}
	return c, nil
}
