package app

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/vaultswap"
	"github.com/iov-one/vaultswap/errors"
)

// ResultSet holds the keys or the values of a query response.
type ResultSet struct {
	Results [][]byte `protobuf:"bytes,1,rep,name=results,proto3" json:"results,omitempty"`
}

// resultSet is the proto.Message form of ResultSet.
type resultSet ResultSet

func (m *resultSet) Reset()         { *m = resultSet{} }
func (m *resultSet) String() string { return proto.CompactTextString(m) }
func (*resultSet) ProtoMessage()    {}

// Marshal writes every result as the repeated field 1.
func (r *ResultSet) Marshal() ([]byte, error) {
	return proto.Marshal((*resultSet)(r))
}

func (r *ResultSet) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*resultSet)(r))
}

// ResultsFromKeys returns a ResultSet of all keys
// given a set of models
func ResultsFromKeys(models []vaultswap.Model) *ResultSet {
	res := make([][]byte, len(models))
	for i, m := range models {
		res[i] = m.Key
	}
	return &ResultSet{Results: res}
}

// ResultsFromValues returns a ResultSet of all values
// given a set of models
func ResultsFromValues(models []vaultswap.Model) *ResultSet {
	res := make([][]byte, len(models))
	for i, m := range models {
		res[i] = m.Value
	}
	return &ResultSet{Results: res}
}

// JoinResults inverts ResultsFromKeys and ResultsFromValues
// and makes then a consistent whole again
func JoinResults(keys, values *ResultSet) ([]vaultswap.Model, error) {
	kref, vref := keys.Results, values.Results
	if len(kref) != len(vref) {
		return nil, errors.Wrap(errors.ErrState, "mismatched result set size")
	}
	mods := make([]vaultswap.Model, len(kref))
	for i := range mods {
		mods[i] = vaultswap.Model{
			Key:   kref[i],
			Value: vref[i],
		}
	}
	return mods, nil
}

// UnmarshalOneResult will parse a resultset, and
// it if is not empty, unmarshal the first result into o
func UnmarshalOneResult(bz []byte, o vaultswap.Persistent) error {
	var res ResultSet
	if err := res.Unmarshal(bz); err != nil {
		return err
	}
	// no results, do nothing
	if len(res.Results) == 0 {
		return nil
	}
	return o.Unmarshal(res.Results[0])
}
