package rent

import (
	"github.com/iov-one/vaultswap"
	"github.com/iov-one/vaultswap/errors"
)

const (
	pathSendMsg                = "rent/send"
	pathUpdateConfigurationMsg = "rent/update_configuration"

	maxMemoSize = 128
)

// SendMsg moves lamports between two addresses.
type SendMsg struct {
	Source      vaultswap.Address `protobuf:"bytes,1,opt,name=source,proto3" json:"source,omitempty"`
	Destination vaultswap.Address `protobuf:"bytes,2,opt,name=destination,proto3" json:"destination,omitempty"`
	Amount      uint64            `protobuf:"varint,3,opt,name=amount,proto3" json:"amount,omitempty"`
	Memo        string            `protobuf:"bytes,4,opt,name=memo,proto3" json:"memo,omitempty"`
}

var _ vaultswap.Msg = (*SendMsg)(nil)

func (SendMsg) Path() string {
	return pathSendMsg
}

func (m *SendMsg) Validate() error {
	if err := m.Source.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	if err := m.Destination.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	if m.Amount == 0 {
		return errors.Wrap(errors.ErrAmount, "zero lamports")
	}
	if len(m.Memo) > maxMemoSize {
		return errors.Wrapf(errors.ErrInput, "memo longer than %d", maxMemoSize)
	}
	return nil
}

// UpdateConfigurationMsg patches the rent configuration. Zero fields of
// the patch are left untouched.
type UpdateConfigurationMsg struct {
	Patch *Configuration `protobuf:"bytes,1,opt,name=patch,proto3" json:"patch,omitempty"`
}

var _ vaultswap.Msg = (*UpdateConfigurationMsg)(nil)

func (UpdateConfigurationMsg) Path() string {
	return pathUpdateConfigurationMsg
}

func (m *UpdateConfigurationMsg) Validate() error {
	if m.Patch == nil {
		return errors.Wrap(errors.ErrEmpty, "patch")
	}
	return m.Patch.Validate()
}
