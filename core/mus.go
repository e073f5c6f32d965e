package core

import (
	"github.com/mus-format/mus-go"
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// Hand-written MUS serializers for the types that cross the storage
// boundary. The shapes are small and stable enough that generated code
// would not pay for itself.
var (
	PositionsMUS    = ord.NewSliceSer[uint32](varint.Uint32)
	PostingMUS      = postingMUS{}
	PostingListMUS  = ord.NewSliceSer[Posting](PostingMUS)
	StoredFieldsMUS = ord.NewMapSer[string, string](ord.String, ord.String)
	FieldLensMUS    = ord.NewMapSer[string, uint32](ord.String, varint.Uint32)
	TermTotalsMUS   = ord.NewMapSer[string, uint64](ord.String, varint.Uint64)
	IndexStatsMUS   = indexStatsMUS{}
)

type postingMUS struct{}

var _ mus.Serializer[Posting] = postingMUS{}

func (postingMUS) Marshal(p Posting, bs []byte) (n int) {
	n = ord.String.Marshal(p.DocID, bs)
	n += varint.Uint32.Marshal(p.Frequency, bs[n:])
	n += PositionsMUS.Marshal(p.Positions, bs[n:])
	return
}

func (postingMUS) Unmarshal(bs []byte) (p Posting, n int, err error) {
	var n1 int
	p.DocID, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	p.Frequency, n1, err = varint.Uint32.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	p.Positions, n1, err = PositionsMUS.Unmarshal(bs[n:])
	n += n1
	return
}

func (postingMUS) Size(p Posting) (size int) {
	size = ord.String.Size(p.DocID)
	size += varint.Uint32.Size(p.Frequency)
	size += PositionsMUS.Size(p.Positions)
	return
}

func (postingMUS) Skip(bs []byte) (n int, err error) {
	var n1 int
	n, err = ord.String.Skip(bs)
	if err != nil {
		return
	}
	n1, err = varint.Uint32.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = PositionsMUS.Skip(bs[n:])
	n += n1
	return
}

type indexStatsMUS struct{}

var _ mus.Serializer[IndexStats] = indexStatsMUS{}

func (indexStatsMUS) Marshal(s IndexStats, bs []byte) (n int) {
	n = varint.Uint32.Marshal(s.DocCount, bs)
	n += TermTotalsMUS.Marshal(s.TermTotals, bs[n:])
	return
}

func (indexStatsMUS) Unmarshal(bs []byte) (s IndexStats, n int, err error) {
	var n1 int
	s.DocCount, n, err = varint.Uint32.Unmarshal(bs)
	if err != nil {
		return
	}
	s.TermTotals, n1, err = TermTotalsMUS.Unmarshal(bs[n:])
	n += n1
	return
}

func (indexStatsMUS) Size(s IndexStats) (size int) {
	size = varint.Uint32.Size(s.DocCount)
	size += TermTotalsMUS.Size(s.TermTotals)
	return
}

func (indexStatsMUS) Skip(bs []byte) (n int, err error) {
	var n1 int
	n, err = varint.Uint32.Skip(bs)
	if err != nil {
		return
	}
	n1, err = TermTotalsMUS.Skip(bs[n:])
	n += n1
	return
}
