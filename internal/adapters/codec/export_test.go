// export_test.go exports private functions for white-box testing.
package codec

// SealPayload frames a raw payload without encoding it.
var SealPayload = seal

// EncodeVersionedContainer encodes an empty asset graph value under an arbitrary version.
func EncodeVersionedContainer(version uint16) ([]byte, error) {
	value, err := marshal(&wireContentGraph{})
	if err != nil {
		return nil, err
	}
	payload, err := marshal(&wireContainer{
		AssetGraph: &wireVersioned{Version: version, Value: value},
	})
	if err != nil {
		return nil, err
	}
	return seal(payload, false)
}
