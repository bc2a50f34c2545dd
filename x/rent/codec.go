package rent

import "github.com/gogo/protobuf/proto"

// Wire forms of the types in codec.proto, without the Marshal and
// Unmarshal methods that would send gogo back here.
type (
	storedBalance          Balance
	sendMsg                SendMsg
	updateConfigurationMsg UpdateConfigurationMsg
	storedConfiguration    Configuration
)

func (m *storedBalance) Reset()         { *m = storedBalance{} }
func (m *storedBalance) String() string { return proto.CompactTextString(m) }
func (*storedBalance) ProtoMessage()    {}

func (m *sendMsg) Reset()         { *m = sendMsg{} }
func (m *sendMsg) String() string { return proto.CompactTextString(m) }
func (*sendMsg) ProtoMessage()    {}

func (m *updateConfigurationMsg) Reset()         { *m = updateConfigurationMsg{} }
func (m *updateConfigurationMsg) String() string { return proto.CompactTextString(m) }
func (*updateConfigurationMsg) ProtoMessage()    {}

func (m *storedConfiguration) Reset()         { *m = storedConfiguration{} }
func (m *storedConfiguration) String() string { return proto.CompactTextString(m) }
func (*storedConfiguration) ProtoMessage()    {}

func (b *Balance) Marshal() ([]byte, error) {
	return proto.Marshal((*storedBalance)(b))
}

func (b *Balance) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*storedBalance)(b))
}

func (m *SendMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*sendMsg)(m))
}

func (m *SendMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*sendMsg)(m))
}

func (m *UpdateConfigurationMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*updateConfigurationMsg)(m))
}

func (m *UpdateConfigurationMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*updateConfigurationMsg)(m))
}

func (c *Configuration) Marshal() ([]byte, error) {
	return proto.Marshal((*storedConfiguration)(c))
}

func (c *Configuration) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*storedConfiguration)(c))
}
