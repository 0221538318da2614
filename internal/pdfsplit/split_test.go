package pdfsplit

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/billflow/billflow/internal/model"
)

func TestOutputName(t *testing.T) {
	tests := []struct {
		name string
		seg  model.ExtractedSegment
		want string
	}{
		{
			name: "written statement date",
			seg: model.ExtractedSegment{
				AccountNumber: "FBNWSTX123456",
				CustomerName:  "John Smith",
				StatementDate: "May 12, 2025",
			},
			want: "FBNWSTX123456_John Smith_May 2025.pdf",
		},
		{
			name: "slash statement date",
			seg: model.ExtractedSegment{
				AccountNumber: "990022",
				CustomerName:  "Jane Doe",
				StatementDate: "5/12/2025",
			},
			want: "990022_Jane Doe_May 2025.pdf",
		},
		{
			name: "no statement date",
			seg: model.ExtractedSegment{
				AccountNumber: "990022",
				CustomerName:  "Jane Doe",
			},
			want: "990022_Jane Doe.pdf",
		},
		{
			name: "unparseable date dropped",
			seg: model.ExtractedSegment{
				AccountNumber: "990022",
				CustomerName:  "Jane Doe",
				StatementDate: "sometime in spring",
			},
			want: "990022_Jane Doe.pdf",
		},
		{
			name: "hostile characters stripped",
			seg: model.ExtractedSegment{
				AccountNumber: "AB/12:34",
				CustomerName:  `Jane "Doe" <x>`,
			},
			want: "AB-12-34_Jane -Doe- -x-.pdf",
		},
		{
			name: "empty fields get sentinel",
			seg:  model.ExtractedSegment{},
			want: "Unknown_Unknown.pdf",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OutputName(tt.seg))
		})
	}
}

func TestSegmentBytes_InvalidRange(t *testing.T) {
	_, err := SegmentBytes(nil, model.ExtractedSegment{StartPage: 0, EndPage: 0})
	assert.Error(t, err)

	_, err = SegmentBytes(nil, model.ExtractedSegment{StartPage: 3, EndPage: 1})
	assert.Error(t, err)
}

func TestWriteSegment_RequiresContent(t *testing.T) {
	_, err := WriteSegment(model.ExtractedSegment{AccountNumber: "A1"}, t.TempDir())
	assert.Error(t, err)
}

func TestWriteSegment(t *testing.T) {
	seg := model.ExtractedSegment{
		AccountNumber: "990022",
		CustomerName:  "Jane Doe",
		Content:       []byte("%PDF-1.7 payload"),
	}

	dir := t.TempDir()
	out, err := WriteSegment(seg, dir)
	assert.NoError(t, err)
	assert.Contains(t, out, "990022_Jane Doe.pdf")
}
