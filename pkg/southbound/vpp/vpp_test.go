package vpp

import (
	"errors"
	"net"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.fd.io/govpp/api"
	interfaces "go.fd.io/govpp/binapi/interface"
	"go.fd.io/govpp/binapi/interface_types"
	"go.fd.io/govpp/binapi/ip6_nd"
	"go.fd.io/govpp/binapi/ip_neighbor"
	"go.fd.io/govpp/binapi/ip_types"
	"go.fd.io/govpp/binapi/mpls"

	"github.com/veesix-networks/vpptest/pkg/southbound"
)

// fakeChannel records requests and answers them from canned replies. The
// embedded api.Channel is nil; only the methods the client uses are provided.
type fakeChannel struct {
	api.Channel
	sent    []api.Message
	details []*interfaces.SwInterfaceDetails
	reply   func(req, reply api.Message) error
	timeout time.Duration
	closed  int
}

func (c *fakeChannel) SendRequest(msg api.Message) api.RequestCtx {
	c.sent = append(c.sent, msg)
	return &fakeRequest{ch: c, req: msg}
}

func (c *fakeChannel) SendMultiRequest(msg api.Message) api.MultiRequestCtx {
	c.sent = append(c.sent, msg)
	return &fakeMultiRequest{ch: c}
}

func (c *fakeChannel) SetReplyTimeout(timeout time.Duration) {
	c.timeout = timeout
}

func (c *fakeChannel) Close() {
	c.closed++
}

type fakeRequest struct {
	ch  *fakeChannel
	req api.Message
}

func (r *fakeRequest) ReceiveReply(reply api.Message) error {
	if r.ch.reply != nil {
		return r.ch.reply(r.req, reply)
	}
	return nil
}

type fakeMultiRequest struct {
	ch  *fakeChannel
	pos int
}

func (r *fakeMultiRequest) ReceiveReply(reply api.Message) (bool, error) {
	if r.pos >= len(r.ch.details) {
		return true, nil
	}
	*reply.(*interfaces.SwInterfaceDetails) = *r.ch.details[r.pos]
	r.pos++
	return false, nil
}

type fakeConn struct {
	ch  *fakeChannel
	err error
}

func (c *fakeConn) NewAPIChannel() (api.Channel, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.ch, nil
}

func newTestVPP(t *testing.T, ch *fakeChannel) *VPP {
	t.Helper()
	v, err := NewVPP(VPPConfig{Connection: &fakeConn{ch: ch}, ReplyTimeout: 2 * time.Second})
	require.NoError(t, err)
	return v
}

func TestNewVPPRequiresConnection(t *testing.T) {
	_, err := NewVPP(VPPConfig{})
	require.Error(t, err)
}

func TestNewVPPRegistersMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewVPP(VPPConfig{Connection: &fakeConn{ch: &fakeChannel{}}, Registerer: reg})
	require.NoError(t, err)

	_, err = NewVPP(VPPConfig{Connection: &fakeConn{ch: &fakeChannel{}}, Registerer: reg})
	require.Error(t, err, "second registration on the same registry must fail")
}

func TestDumpInterfaces(t *testing.T) {
	ch := &fakeChannel{
		details: []*interfaces.SwInterfaceDetails{
			{
				SwIfIndex:     1,
				SupSwIfIndex:  1,
				InterfaceName: "loop0",
				L2Address:     [6]uint8{0xde, 0xad, 0x00, 0x00, 0x00, 0x01},
				Flags:         interface_types.IF_STATUS_API_FLAG_ADMIN_UP,
			},
			{
				SwIfIndex:      2,
				SupSwIfIndex:   1,
				InterfaceName:  "loop0.100",
				SubID:          100,
				SubOuterVlanID: 100,
			},
		},
	}
	v := newTestVPP(t, ch)

	got, err := v.DumpInterfaces()
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, uint32(1), got[0].SwIfIndex)
	assert.Equal(t, "loop0", got[0].Name)
	assert.Equal(t, []byte{0xde, 0xad, 0x00, 0x00, 0x00, 0x01}, got[0].L2Address)
	assert.True(t, got[0].AdminUp)
	assert.False(t, got[0].LinkUp)
	assert.Equal(t, uint16(100), got[1].OuterVlanID)
	assert.Equal(t, uint32(1), got[1].SupSwIfIndex)

	require.Len(t, ch.sent, 1)
	req := ch.sent[0].(*interfaces.SwInterfaceDump)
	assert.Equal(t, interface_types.InterfaceIndex(^uint32(0)), req.SwIfIndex)
	assert.Equal(t, 2*time.Second, ch.timeout)
	assert.Equal(t, 1, ch.closed)
	assert.Equal(t, float64(1), v.Requests(req.GetMessageName(), false))
}

func TestAddDelAddress(t *testing.T) {
	ch := &fakeChannel{}
	v := newTestVPP(t, ch)

	require.NoError(t, v.AddDelAddress(3, []byte{172, 16, 3, 1}, 24, false, true))
	require.NoError(t, v.AddDelAddress(3, net.ParseIP("fd01:3::1").To16(), 64, true, false))

	require.Len(t, ch.sent, 2)
	v4 := ch.sent[0].(*interfaces.SwInterfaceAddDelAddress)
	assert.Equal(t, interface_types.InterfaceIndex(3), v4.SwIfIndex)
	assert.True(t, v4.IsAdd)
	assert.Equal(t, ip_types.ADDRESS_IP4, v4.Prefix.Address.Af)
	assert.Equal(t, ip_types.IP4Address{172, 16, 3, 1}, v4.Prefix.Address.Un.GetIP4())
	assert.Equal(t, uint8(24), v4.Prefix.Len)

	v6 := ch.sent[1].(*interfaces.SwInterfaceAddDelAddress)
	assert.False(t, v6.IsAdd)
	assert.Equal(t, ip_types.ADDRESS_IP6, v6.Prefix.Address.Af)
	assert.Equal(t, uint8(64), v6.Prefix.Len)
}

func TestAddDelAddressRejectsMismatchedFamily(t *testing.T) {
	ch := &fakeChannel{}
	v := newTestVPP(t, ch)

	err := v.AddDelAddress(3, []byte{172, 16, 3, 1}, 24, true, true)
	assert.ErrorIs(t, err, southbound.ErrInvalidAddress)

	err = v.AddDelAddress(3, []byte{1, 2, 3}, 24, false, true)
	assert.ErrorIs(t, err, southbound.ErrInvalidAddress)
	assert.Empty(t, ch.sent)
}

func TestAddDelIPNeighbor(t *testing.T) {
	ch := &fakeChannel{}
	v := newTestVPP(t, ch)

	mac := []byte{0x02, 0x03, 0x00, 0x00, 0xff, 0x02}
	require.NoError(t, v.AddDelIPNeighbor(3, mac, []byte{172, 16, 3, 2}, true))

	req := ch.sent[0].(*ip_neighbor.IPNeighborAddDel)
	assert.True(t, req.IsAdd)
	assert.Equal(t, interface_types.InterfaceIndex(3), req.Neighbor.SwIfIndex)
	assert.Equal(t, ip_neighbor.IP_API_NEIGHBOR_FLAG_STATIC, req.Neighbor.Flags)
	assert.Equal(t, "02:03:00:00:ff:02", req.Neighbor.MacAddress.String())
	assert.Equal(t, ip_types.IP4Address{172, 16, 3, 2}, req.Neighbor.IPAddress.Un.GetIP4())

	err := v.AddDelIPNeighbor(3, mac[:4], []byte{172, 16, 3, 2}, true)
	assert.ErrorIs(t, err, southbound.ErrInvalidAddress)
}

func TestInterfaceSettings(t *testing.T) {
	ch := &fakeChannel{}
	v := newTestVPP(t, ch)

	require.NoError(t, v.SetTable(4, true, 10))
	require.NoError(t, v.SetAdminState(4, true))
	require.NoError(t, v.SetAdminState(4, false))
	require.NoError(t, v.SuppressRA(4))
	require.NoError(t, v.EnableMPLS(4))
	require.Len(t, ch.sent, 5)

	table := ch.sent[0].(*interfaces.SwInterfaceSetTable)
	assert.True(t, table.IsIPv6)
	assert.Equal(t, uint32(10), table.VrfID)

	up := ch.sent[1].(*interfaces.SwInterfaceSetFlags)
	assert.Equal(t, interface_types.IF_STATUS_API_FLAG_ADMIN_UP, up.Flags)
	down := ch.sent[2].(*interfaces.SwInterfaceSetFlags)
	assert.Equal(t, interface_types.IfStatusFlags(0), down.Flags)

	ra := ch.sent[3].(*ip6_nd.SwInterfaceIP6ndRaConfig)
	assert.Equal(t, uint8(1), ra.Suppress)

	mplsReq := ch.sent[4].(*mpls.SwInterfaceSetMplsEnable)
	assert.True(t, mplsReq.Enable)
	assert.Equal(t, interface_types.InterfaceIndex(4), mplsReq.SwIfIndex)
}

func TestCreateInterfaces(t *testing.T) {
	ch := &fakeChannel{
		reply: func(req, reply api.Message) error {
			switch r := reply.(type) {
			case *interfaces.CreateLoopbackReply:
				r.SwIfIndex = 7
			case *interfaces.CreateVlanSubifReply:
				r.SwIfIndex = 8
			}
			return nil
		},
	}
	v := newTestVPP(t, ch)

	idx, err := v.CreateLoopback(net.HardwareAddr{0xde, 0xad, 0, 0, 0, 7})
	require.NoError(t, err)
	assert.Equal(t, uint32(7), idx)

	idx, err = v.CreateVLANSubif(7, 100)
	require.NoError(t, err)
	assert.Equal(t, uint32(8), idx)

	subif := ch.sent[1].(*interfaces.CreateVlanSubif)
	assert.Equal(t, uint32(100), subif.VlanID)
	assert.Equal(t, interface_types.InterfaceIndex(7), subif.SwIfIndex)
}

func TestRequestErrorsAreCounted(t *testing.T) {
	vppErr := api.VPPApiError(-2)
	ch := &fakeChannel{
		reply: func(req, reply api.Message) error { return vppErr },
	}
	v := newTestVPP(t, ch)

	err := v.EnableMPLS(9)
	require.Error(t, err)
	assert.True(t, errors.Is(err, vppErr))

	name := (&mpls.SwInterfaceSetMplsEnable{}).GetMessageName()
	assert.Equal(t, float64(1), v.Requests(name, true))
	assert.Equal(t, float64(0), v.Requests(name, false))
}

func TestChannelErrorPropagates(t *testing.T) {
	connErr := errors.New("socket closed")
	v, err := NewVPP(VPPConfig{Connection: &fakeConn{err: connErr}})
	require.NoError(t, err)

	_, err = v.DumpInterfaces()
	assert.ErrorIs(t, err, connErr)
}
