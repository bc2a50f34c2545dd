package crypto

import "github.com/gogo/protobuf/proto"

type (
	publicKey  PublicKey
	privateKey PrivateKey
	signature  Signature
)

func (m *publicKey) Reset()         { *m = publicKey{} }
func (m *publicKey) String() string { return proto.CompactTextString(m) }
func (*publicKey) ProtoMessage()    {}

func (m *privateKey) Reset()         { *m = privateKey{} }
func (m *privateKey) String() string { return proto.CompactTextString(m) }
func (*privateKey) ProtoMessage()    {}

func (m *signature) Reset()         { *m = signature{} }
func (m *signature) String() string { return proto.CompactTextString(m) }
func (*signature) ProtoMessage()    {}

// Marshal encodes the key bytes as field 1.
func (p *PublicKey) Marshal() ([]byte, error) {
	return proto.Marshal((*publicKey)(p))
}

func (p *PublicKey) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*publicKey)(p))
}

func (p *PrivateKey) Marshal() ([]byte, error) {
	return proto.Marshal((*privateKey)(p))
}

func (p *PrivateKey) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*privateKey)(p))
}

func (s *Signature) Marshal() ([]byte, error) {
	return proto.Marshal((*signature)(s))
}

func (s *Signature) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*signature)(s))
}
