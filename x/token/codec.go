package token

import "github.com/gogo/protobuf/proto"

// Wire forms of the types in codec.proto. Converting to them drops the
// Marshal and Unmarshal methods so gogo encodes the tagged fields itself.
type (
	createMintMsg       CreateMintMsg
	mintToMsg           MintToMsg
	transferMsg         TransferMsg
	createAssociatedMsg CreateAssociatedMsg
	storedMint          Mint
	storedAccount       Account
)

func (m *createMintMsg) Reset()         { *m = createMintMsg{} }
func (m *createMintMsg) String() string { return proto.CompactTextString(m) }
func (*createMintMsg) ProtoMessage()    {}

func (m *mintToMsg) Reset()         { *m = mintToMsg{} }
func (m *mintToMsg) String() string { return proto.CompactTextString(m) }
func (*mintToMsg) ProtoMessage()    {}

func (m *transferMsg) Reset()         { *m = transferMsg{} }
func (m *transferMsg) String() string { return proto.CompactTextString(m) }
func (*transferMsg) ProtoMessage()    {}

func (m *createAssociatedMsg) Reset()         { *m = createAssociatedMsg{} }
func (m *createAssociatedMsg) String() string { return proto.CompactTextString(m) }
func (*createAssociatedMsg) ProtoMessage()    {}

func (m *storedMint) Reset()         { *m = storedMint{} }
func (m *storedMint) String() string { return proto.CompactTextString(m) }
func (*storedMint) ProtoMessage()    {}

func (m *storedAccount) Reset()         { *m = storedAccount{} }
func (m *storedAccount) String() string { return proto.CompactTextString(m) }
func (*storedAccount) ProtoMessage()    {}

func (m *CreateMintMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*createMintMsg)(m))
}

func (m *CreateMintMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*createMintMsg)(m))
}

func (m *MintToMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*mintToMsg)(m))
}

func (m *MintToMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*mintToMsg)(m))
}

func (m *TransferMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*transferMsg)(m))
}

func (m *TransferMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*transferMsg)(m))
}

func (m *CreateAssociatedMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*createAssociatedMsg)(m))
}

func (m *CreateAssociatedMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*createAssociatedMsg)(m))
}

func (m *Mint) Marshal() ([]byte, error) {
	return proto.Marshal((*storedMint)(m))
}

func (m *Mint) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*storedMint)(m))
}

func (a *Account) Marshal() ([]byte, error) {
	return proto.Marshal((*storedAccount)(a))
}

func (a *Account) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*storedAccount)(a))
}
