// Copyright (c) 2019,CAOHONGJU All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sdp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sdpRaw = `v=0
o=- 0 0 IN IP4 127.0.0.1
s=No Name
c=IN IP4 127.0.0.1
t=0 0
a=tool:libavformat 58.20.100
m=video 0 RTP/AVP 96
b=AS:2500
a=rtpmap:96 H264/90000
a=fmtp:96 packetization-mode=1; sprop-parameter-sets=Z2QAH6zZQFAFuhAAAAMAEAAAAwPI8YMZYA==,aO+8sA==; profile-level-id=64001F
a=control:streamid=0
m=audio 0 RTP/AVP 97
b=AS:160
a=rtpmap:97 MPEG4-GENERIC/44100/2
a=fmtp:97 profile-level-id=1;mode=AAC-hbr;sizelength=13;indexlength=3;indexdeltalength=3; config=121056E500
a=control:streamid=1
`

func TestParameterSets(t *testing.T) {
	sets, err := ParameterSets(sdpRaw)
	require.NoError(t, err)
	require.Len(t, sets, 2)
	assert.Equal(t, "Z2QAH6zZQFAFuhAAAAMAEAAAAwPI8YMZYA==", sets[0])
	assert.Equal(t, "aO+8sA==", sets[1])
}

func TestParameterSetsNoVideo(t *testing.T) {
	const audioOnly = `v=0
o=- 0 0 IN IP4 127.0.0.1
s=No Name
c=IN IP4 127.0.0.1
t=0 0
m=audio 0 RTP/AVP 97
a=rtpmap:97 MPEG4-GENERIC/44100/2
`
	_, err := ParameterSets(audioOnly)
	assert.Equal(t, ErrNoParameterSets, err)
}

func TestParameterSetsBadSDP(t *testing.T) {
	_, err := ParameterSets("not an sdp")
	assert.Error(t, err)
}
