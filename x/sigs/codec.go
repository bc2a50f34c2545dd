package sigs

import "github.com/gogo/protobuf/proto"

type (
	userData     UserData
	stdSignature StdSignature
)

func (m *userData) Reset()         { *m = userData{} }
func (m *userData) String() string { return proto.CompactTextString(m) }
func (*userData) ProtoMessage()    {}

func (m *stdSignature) Reset()         { *m = stdSignature{} }
func (m *stdSignature) String() string { return proto.CompactTextString(m) }
func (*stdSignature) ProtoMessage()    {}

func (u *UserData) Marshal() ([]byte, error) {
	return proto.Marshal((*userData)(u))
}

func (u *UserData) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*userData)(u))
}

func (s *StdSignature) Marshal() ([]byte, error) {
	return proto.Marshal((*stdSignature)(s))
}

func (s *StdSignature) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*stdSignature)(s))
}
