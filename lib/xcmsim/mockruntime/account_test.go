// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package mockruntime

import (
	"testing"

	"github.com/ChainSafe/xcmsim/lib/xcmsim"
	"github.com/stretchr/testify/assert"
)

func Test_SovereignAccount(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		here    xcmsim.ChainID
		other   xcmsim.ChainID
		account AccountID
		prefix  []byte
	}{
		"parent_on_parachain": {
			here:    1,
			other:   xcmsim.RelayChainID,
			account: ParentAccount(),
			prefix:  []byte("Parent\x00\x00"),
		},
		"child_on_relay": {
			here:    xcmsim.RelayChainID,
			other:   2,
			account: ChildAccount(2),
			prefix:  []byte("para\x02\x00\x00\x00"),
		},
		"sibling_on_parachain": {
			here:    1,
			other:   258,
			account: SiblingAccount(258),
			prefix:  []byte("sibl\x02\x01\x00\x00"),
		},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			account := SovereignAccount(testCase.here, testCase.other)

			assert.Equal(t, testCase.account, account)
			assert.Equal(t, testCase.prefix, account[:len(testCase.prefix)])
			assert.Equal(t, make([]byte, 24), account[8:])
		})
	}
}

func Test_AccountID_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "0x7061726101000000", ChildAccount(1).String())
	assert.Equal(t, "0x0000000000000000", Alice.String())
}
