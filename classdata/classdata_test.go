package classdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseSeedScenario is the spec.md §8 seed: header deltas [2,1,0,1],
// two static-field entries with field_idx_diff=[3,2], access_flags=[1,1],
// reconstructing to absolute field_idx=[3,5].
func TestParseSeedScenario(t *testing.T) {
	var buf []byte
	buf = append(buf, 2, 1, 0, 1) // static=2, instance=1, direct=0, virtual=1
	buf = append(buf, 3, 1)       // static field 0: diff=3, flags=1 -> idx 3
	buf = append(buf, 2, 1)       // static field 1: diff=2, flags=1 -> idx 5
	buf = append(buf, 4, 1)       // instance field 0: diff=4, flags=1 -> idx 4
	buf = append(buf, 7, 9, 0)    // virtual method 0: diff=7, flags=9, code_off=0

	item, n, err := Parse(buf)
	require.NoError(t, err)
	assert.Equal(t, len(buf), n)

	require.Len(t, item.StaticFields, 2)
	assert.Equal(t, uint32(3), item.StaticFields[0].FieldIdx)
	assert.Equal(t, uint32(5), item.StaticFields[1].FieldIdx)

	require.Len(t, item.InstanceFields, 1)
	assert.Equal(t, uint32(4), item.InstanceFields[0].FieldIdx)

	assert.Empty(t, item.DirectMethods)
	require.Len(t, item.VirtualMethods, 1)
	assert.Equal(t, uint32(7), item.VirtualMethods[0].MethodIdx)
	assert.Equal(t, uint32(9), item.VirtualMethods[0].AccessFlags)
}

func TestMonotoneFieldIndex(t *testing.T) {
	item := &ClassDataItem{
		StaticFields: []EncodedField{{FieldIdx: 1}, {FieldIdx: 4}, {FieldIdx: 10}},
	}
	for i := 1; i < len(item.StaticFields); i++ {
		assert.Greater(t, item.StaticFields[i].FieldIdx, item.StaticFields[i-1].FieldIdx)
	}
}

// TestEncodeDecodeRoundTrip checks that Encode followed by Parse
// reproduces the original absolute indices, per spec.md §8's "delta
// round trip" testable property.
func TestEncodeDecodeRoundTrip(t *testing.T) {
	original := &ClassDataItem{
		StaticFields:   []EncodedField{{FieldIdx: 2, AccessFlags: 0x1}, {FieldIdx: 9, AccessFlags: 0x9}},
		InstanceFields: []EncodedField{{FieldIdx: 0, AccessFlags: 0x4}},
		DirectMethods:  []EncodedMethod{{MethodIdx: 1, AccessFlags: 0x10001, CodeOff: 0x200}},
		VirtualMethods: []EncodedMethod{{MethodIdx: 3, AccessFlags: 0x1, CodeOff: 0x400}, {MethodIdx: 8, AccessFlags: 0x1, CodeOff: 0x500}},
	}

	encoded := Encode(original)
	decoded, n, err := Parse(encoded)
	require.NoError(t, err)
	assert.Equal(t, len(encoded), n)
	assert.Equal(t, original, decoded)
}

func TestParseTruncated(t *testing.T) {
	_, _, err := Parse([]byte{})
	require.Error(t, err)
}

func TestParseEmptySequences(t *testing.T) {
	item, n, err := Parse([]byte{0, 0, 0, 0})
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Empty(t, item.StaticFields)
	assert.Empty(t, item.InstanceFields)
	assert.Empty(t, item.DirectMethods)
	assert.Empty(t, item.VirtualMethods)
}
