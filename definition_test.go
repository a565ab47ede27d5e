package fitdecode

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefinitionMessageFieldSizeNotMultipleOfBaseTypeIsParseError(t *testing.T) {
	body := defMsg(0, 0, ft(0, 3, 0x84)) // uint16 (size 2) crammed into a 3-byte field
	raw := buildFile(body)

	rd, err := NewReader(bytes.NewReader(raw))
	require.NoError(t, err)
	defer rd.Close()

	_, err = rd.Next() // header
	require.NoError(t, err)

	_, err = rd.Next() // definition: should fail
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestDefinitionMessageUnknownGlobalMesgNumLeavesFieldsUnresolved(t *testing.T) {
	body := append(
		defMsg(0, 65000, ft(9, 2, 0x84)),
		dataMsg(0, u16(42))...,
	)
	msg := decodeSingleMessage(t, body)

	require.Len(t, msg.Fields, 1)
	assert.Nil(t, msg.Fields[0].Field)
	assert.Equal(t, "unknown_9", msg.Fields[0].Name)
	u, ok := msg.Fields[0].Value.AsUint64()
	require.True(t, ok)
	assert.Equal(t, uint64(42), u)
}

func TestDefinitionMessageDeveloperFieldUnregisteredIsParseError(t *testing.T) {
	body := defMsgDev(0, 20, nil, []devFieldTriplet{dft(5, 2, 9)})
	raw := buildFile(body)

	rd, err := NewReader(bytes.NewReader(raw))
	require.NoError(t, err)
	defer rd.Close()

	_, err = rd.Next()
	require.NoError(t, err)
	_, err = rd.Next()
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
}
