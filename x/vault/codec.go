package vault

import "github.com/gogo/protobuf/proto"

// Wire forms of the messages declared in codec.proto. They share the
// fields and tags of the exported types but not their Marshal and
// Unmarshal methods, so gogo encodes them by reflection.
type (
	initializeMsg InitializeMsg
	depositMsg    DepositMsg
	cancelMsg     CancelMsg
)

func (m *initializeMsg) Reset()         { *m = initializeMsg{} }
func (m *initializeMsg) String() string { return proto.CompactTextString(m) }
func (*initializeMsg) ProtoMessage()    {}

func (m *depositMsg) Reset()         { *m = depositMsg{} }
func (m *depositMsg) String() string { return proto.CompactTextString(m) }
func (*depositMsg) ProtoMessage()    {}

func (m *cancelMsg) Reset()         { *m = cancelMsg{} }
func (m *cancelMsg) String() string { return proto.CompactTextString(m) }
func (*cancelMsg) ProtoMessage()    {}

func (m *InitializeMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*initializeMsg)(m))
}

func (m *InitializeMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*initializeMsg)(m))
}

func (m *DepositMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*depositMsg)(m))
}

func (m *DepositMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*depositMsg)(m))
}

func (m *CancelMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*cancelMsg)(m))
}

func (m *CancelMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*cancelMsg)(m))
}
