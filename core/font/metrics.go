package font

import (
	"encoding/binary"

	"seehuhn.de/go/sfnt"
)

// Metrics holds the vertical metrics of a font, in pixels.
// Descent is a positive distance below the baseline. UnderlineOffset and
// StrikethroughOffset are distances from the baseline, positive downwards
// for underlines and upwards for strike-throughs.
type Metrics struct {
	Height              float32 // baseline-to-baseline distance
	Ascent              float32
	Descent             float32
	LineThickness       float32 // underline thickness
	UnderlineOffset     float32
	StrikethroughOffset float32
}

func computeMetrics(info *sfnt.Font, data []byte, size float32) Metrics {
	scale := size / float32(info.UnitsPerEm)
	asc, desc := float32(info.Ascent), float32(info.Descent)
	m := Metrics{
		Height:          (asc - desc + float32(info.LineGap)) * scale,
		Ascent:          asc * scale,
		Descent:         -desc * scale,
		LineThickness:   float32(info.UnderlineThickness) * scale,
		UnderlineOffset: -float32(info.UnderlinePosition) * scale,
	}
	if pos, ok := strikeoutPosition(data); ok {
		m.StrikethroughOffset = float32(pos) * scale
	} else {
		m.StrikethroughOffset = 0.5 * (m.Ascent - m.Descent)
	}
	tracer().Debugf("font metrics at %.1fpx: %+v", size, m)
	return m
}

// strikeoutPosition reads field yStrikeoutPosition from a font's OS/2 table.
// Neither font package exposes it, so we locate the table in the
// table directory of the font file ourselves.
func strikeoutPosition(data []byte) (int16, bool) {
	const (
		dirHeaderLen   = 12
		tableRecordLen = 16
		strikeoutField = 28 // offset of yStrikeoutPosition within OS/2
	)
	if len(data) < dirHeaderLen {
		return 0, false
	}
	n := int(binary.BigEndian.Uint16(data[4:6]))
	for i := 0; i < n; i++ {
		rec := dirHeaderLen + i*tableRecordLen
		if rec+tableRecordLen > len(data) {
			return 0, false
		}
		if string(data[rec:rec+4]) != "OS/2" {
			continue
		}
		offset := int(binary.BigEndian.Uint32(data[rec+8 : rec+12]))
		length := int(binary.BigEndian.Uint32(data[rec+12 : rec+16]))
		if length < strikeoutField+2 || offset+strikeoutField+2 > len(data) {
			return 0, false
		}
		pos := offset + strikeoutField
		return int16(binary.BigEndian.Uint16(data[pos : pos+2])), true
	}
	return 0, false
}
