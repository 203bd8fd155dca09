package session

import (
	"sync/atomic"
)

// Metrics contains atomic counters for one session.
// Metrics can be used as the value of a prometheus CounterFunc or GaugeFunc.
type Metrics struct {
	// MsgSendCount indicates the number of datagrams sent, retransmissions
	// included.
	MsgSendCount atomic.Uint64
	// MsgRecvCount indicates the number of datagrams received and decoded.
	MsgRecvCount atomic.Uint64
	// RetransmitCount indicates the number of retransmissions after a missed
	// acknowledgement.
	RetransmitCount atomic.Uint64
	// TimeoutCount indicates the number of requests abandoned on a timeout.
	TimeoutCount atomic.Uint64
	// FragmentRecvCount indicates the number of block fragments collected.
	FragmentRecvCount atomic.Uint64
	// BytesSent indicates the total bytes written to the socket.
	BytesSent atomic.Uint64
	// BytesRecv indicates the total bytes read from the socket.
	BytesRecv atomic.Uint64
}

func (m *Metrics) incMsgSendCount() {
	m.MsgSendCount.Add(1)
}

func (m *Metrics) incMsgRecvCount() {
	m.MsgRecvCount.Add(1)
}

func (m *Metrics) incRetransmitCount() {
	m.RetransmitCount.Add(1)
}

func (m *Metrics) incTimeoutCount() {
	m.TimeoutCount.Add(1)
}

func (m *Metrics) incFragmentRecvCount() {
	m.FragmentRecvCount.Add(1)
}

func (m *Metrics) addBytesSent(n int) {
	m.BytesSent.Add(uint64(n))
}

func (m *Metrics) addBytesRecv(n int) {
	m.BytesRecv.Add(uint64(n))
}
