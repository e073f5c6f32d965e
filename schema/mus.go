package schema

import (
	"fmt"

	"github.com/mus-format/mus-go"
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// MUS serializers for persisting schema metadata alongside a generation.
var (
	FieldMUS  = fieldMUS{}
	FieldsMUS = ord.NewSliceSer[Field](FieldMUS)
)

type fieldMUS struct{}

var _ mus.Serializer[Field] = fieldMUS{}

func (fieldMUS) Marshal(f Field, bs []byte) (n int) {
	n = ord.String.Marshal(f.Name, bs)
	n += ord.Bool.Marshal(f.Stored, bs[n:])
	n += varint.Int.Marshal(int(f.Analyzer), bs[n:])
	n += ord.Bool.Marshal(f.Unique, bs[n:])
	return
}

func (fieldMUS) Unmarshal(bs []byte) (f Field, n int, err error) {
	var n1 int
	f.Name, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	f.Stored, n1, err = ord.Bool.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	var analyzer int
	analyzer, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	if analyzer < int(AnalyzerNone) || analyzer > int(AnalyzerStemmed) {
		err = fmt.Errorf("%w: %d", ErrUnknownAnalyzer, analyzer)
		return
	}
	f.Analyzer = Analyzer(analyzer)
	f.Unique, n1, err = ord.Bool.Unmarshal(bs[n:])
	n += n1
	return
}

func (fieldMUS) Size(f Field) (size int) {
	size = ord.String.Size(f.Name)
	size += ord.Bool.Size(f.Stored)
	size += varint.Int.Size(int(f.Analyzer))
	size += ord.Bool.Size(f.Unique)
	return
}

func (fieldMUS) Skip(bs []byte) (n int, err error) {
	var n1 int
	n, err = ord.String.Skip(bs)
	if err != nil {
		return
	}
	n1, err = ord.Bool.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.Bool.Skip(bs[n:])
	n += n1
	return
}
