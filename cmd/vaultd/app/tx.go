package app

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/vaultswap"
	"github.com/iov-one/vaultswap/errors"
	"github.com/iov-one/vaultswap/x/rent"
	"github.com/iov-one/vaultswap/x/sigs"
	"github.com/iov-one/vaultswap/x/token"
	"github.com/iov-one/vaultswap/x/vault"
)

// Tx is the transaction of the vaultd chain: the signatures of every
// required signer and exactly one message.
type Tx struct {
	Signatures []*sigs.StdSignature `json:"signatures"`
	Msg        vaultswap.Msg        `json:"msg"`
}

// make sure tx fulfills all interfaces
var _ vaultswap.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// txMsg is the wire form of Tx. Every message has its own field and at
// most one of them may be set. Field numbers must never be reused.
type txMsg struct {
	Signatures []*sigs.StdSignature `protobuf:"bytes,1,rep,name=signatures,proto3"`

	SendMsg                *rent.SendMsg                `protobuf:"bytes,20,opt,name=send_msg,proto3"`
	UpdateConfigurationMsg *rent.UpdateConfigurationMsg `protobuf:"bytes,21,opt,name=update_configuration_msg,proto3"`
	CreateMintMsg          *token.CreateMintMsg         `protobuf:"bytes,30,opt,name=create_mint_msg,proto3"`
	MintToMsg              *token.MintToMsg             `protobuf:"bytes,31,opt,name=mint_to_msg,proto3"`
	TransferMsg            *token.TransferMsg           `protobuf:"bytes,32,opt,name=transfer_msg,proto3"`
	CreateAssociatedMsg    *token.CreateAssociatedMsg   `protobuf:"bytes,33,opt,name=create_associated_msg,proto3"`
	InitializeMsg          *vault.InitializeMsg         `protobuf:"bytes,40,opt,name=initialize_msg,proto3"`
	DepositMsg             *vault.DepositMsg            `protobuf:"bytes,41,opt,name=deposit_msg,proto3"`
	CancelMsg              *vault.CancelMsg             `protobuf:"bytes,42,opt,name=cancel_msg,proto3"`
}

func (m *txMsg) Reset()         { *m = txMsg{} }
func (m *txMsg) String() string { return proto.CompactTextString(m) }
func (*txMsg) ProtoMessage()    {}

func (m *txMsg) setMsg(msg vaultswap.Msg) error {
	switch msg := msg.(type) {
	case *rent.SendMsg:
		m.SendMsg = msg
	case *rent.UpdateConfigurationMsg:
		m.UpdateConfigurationMsg = msg
	case *token.CreateMintMsg:
		m.CreateMintMsg = msg
	case *token.MintToMsg:
		m.MintToMsg = msg
	case *token.TransferMsg:
		m.TransferMsg = msg
	case *token.CreateAssociatedMsg:
		m.CreateAssociatedMsg = msg
	case *vault.InitializeMsg:
		m.InitializeMsg = msg
	case *vault.DepositMsg:
		m.DepositMsg = msg
	case *vault.CancelMsg:
		m.CancelMsg = msg
	default:
		return errors.Wrapf(errors.ErrMsg, "%T cannot be sent", msg)
	}
	return nil
}

// msg returns the single message that is set, nil when there is none.
func (m *txMsg) msg() (vaultswap.Msg, error) {
	var found []vaultswap.Msg
	add := func(msg vaultswap.Msg, isSet bool) {
		if isSet {
			found = append(found, msg)
		}
	}
	add(m.SendMsg, m.SendMsg != nil)
	add(m.UpdateConfigurationMsg, m.UpdateConfigurationMsg != nil)
	add(m.CreateMintMsg, m.CreateMintMsg != nil)
	add(m.MintToMsg, m.MintToMsg != nil)
	add(m.TransferMsg, m.TransferMsg != nil)
	add(m.CreateAssociatedMsg, m.CreateAssociatedMsg != nil)
	add(m.InitializeMsg, m.InitializeMsg != nil)
	add(m.DepositMsg, m.DepositMsg != nil)
	add(m.CancelMsg, m.CancelMsg != nil)

	switch len(found) {
	case 0:
		return nil, nil
	case 1:
		return found[0], nil
	default:
		return nil, errors.Wrap(errors.ErrMsg, "more than one message")
	}
}

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(bz []byte) (vaultswap.Tx, error) {
	tx := new(Tx)
	if err := tx.Unmarshal(bz); err != nil {
		return nil, err
	}
	return tx, nil
}

// GetMsg returns the single message of the transaction.
func (tx *Tx) GetMsg() (vaultswap.Msg, error) {
	if tx.Msg == nil {
		return nil, errors.Wrap(errors.ErrMsg, "missing message")
	}
	return tx.Msg, nil
}

// GetSignatures returns the signatures in the order they were appended.
func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the encoding of the transaction without its
// signatures, so that every signer signs the same bytes.
func (tx *Tx) GetSignBytes() ([]byte, error) {
	unsigned := Tx{Msg: tx.Msg}
	return unsigned.Marshal()
}

// Marshal writes signatures as repeated field 1 and the message under
// its own field number.
func (tx *Tx) Marshal() ([]byte, error) {
	wire := txMsg{Signatures: tx.Signatures}
	if tx.Msg != nil {
		if err := wire.setMsg(tx.Msg); err != nil {
			return nil, err
		}
	}
	return proto.Marshal(&wire)
}

// Unmarshal is the reverse of Marshal. Unknown fields are skipped and a
// second message kind is rejected. A repeated field of the same kind is
// merged, as protobuf does.
func (tx *Tx) Unmarshal(raw []byte) error {
	*tx = Tx{}
	var wire txMsg
	if err := proto.Unmarshal(raw, &wire); err != nil {
		return errors.Wrap(errors.ErrModel, err.Error())
	}
	msg, err := wire.msg()
	if err != nil {
		return err
	}
	tx.Signatures = wire.Signatures
	tx.Msg = msg
	return nil
}
