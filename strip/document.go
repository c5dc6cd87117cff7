package strip

import "strings"

// 该文件定义标签条的结构化文档形式，与具体文件格式无关；project 包负责把它写成 JSON。

// Document 是 Strip 的序列化形式。
type Document struct {
	Height           float64           `json:"height"`
	ContentCellWidth float64           `json:"content_cell_width"`
	Segments         []SegmentDocument `json:"segments"`
	Settings         *SettingsDocument `json:"settings,omitempty"`
}

// SegmentDocument 以 type 字段标记变体。
type SegmentDocument struct {
	ID              string  `json:"id"`
	Type            string  `json:"type"`
	Text            string  `json:"text"`
	Width           float64 `json:"width"`
	TextFormat      string  `json:"text_format"`
	TextColor       string  `json:"text_color"`
	BackgroundColor string  `json:"background_color"`
}

// SettingsDocument 对应 Settings。
type SettingsDocument struct {
	PaperSize              string           `json:"paper_size"`
	PageMargins            *MarginsDocument `json:"page_margins"`
	DefaultFontName        string           `json:"default_font_name"`
	DefaultFontSize        float64          `json:"default_font_size"`
	DefaultTextColor       string           `json:"default_text_color"`
	DefaultBackgroundColor string           `json:"default_background_color"`
	RotationAngle          int              `json:"rotation_angle"`
}

// MarginsDocument 对应 PageMargins。
type MarginsDocument struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// Document 生成结构化文档，segment 顺序与 Segments() 一致。
func (s *Strip) Document() *Document {
	segs := s.Segments()
	doc := &Document{
		Height:           s.height,
		ContentCellWidth: s.contentCellWidth,
		Segments:         make([]SegmentDocument, 0, len(segs)),
		Settings:         settingsDocument(s.settings),
	}
	for _, seg := range segs {
		doc.Segments = append(doc.Segments, SegmentToDocument(seg))
	}
	return doc
}

// SegmentToDocument 序列化单个 segment。
func SegmentToDocument(seg Segment) SegmentDocument {
	return SegmentDocument{
		ID:              seg.ID(),
		Type:            seg.Kind().String(),
		Text:            seg.Text(),
		Width:           seg.Width(),
		TextFormat:      seg.Format().Name(),
		TextColor:       seg.TextColor().Hex(),
		BackgroundColor: seg.BackgroundColor().Hex(),
	}
}

// SegmentFromDocument 按 type 路由到对应变体的构造函数；未知类型返回 UnknownSegmentKindError。
func SegmentFromDocument(doc SegmentDocument) (Segment, error) {
	declared := strings.ToLower(strings.TrimSpace(doc.Type))

	text, err := colorOr(doc.TextColor, Black)
	if err != nil {
		return nil, err
	}
	bg, err := colorOr(doc.BackgroundColor, White)
	if err != nil {
		return nil, err
	}
	d := Defaults{TextColor: text, BackgroundColor: bg}

	var seg Segment
	switch declared {
	case KindStart.String():
		seg, err = NewStartCap(doc.Width, doc.Text, d)
	case KindContent.String():
		id := doc.ID
		if id == "" {
			id = "0"
		}
		var c *ContentCell
		c, err = NewContentCell(id, doc.Width, d)
		if c != nil {
			c.SetText(doc.Text)
			seg = c
		}
	case KindEnd.String():
		seg, err = NewEndCap(doc.Width, doc.Text, d)
	default:
		return nil, &UnknownSegmentKindError{Kind: doc.Type}
	}
	if err != nil {
		return nil, err
	}
	seg.SetFormat(ParseTextFormat(doc.TextFormat))

	// 手工编辑或损坏的文档：声明的类型、固定 id 与实际变体必须一致，内容格也不能占用端盖 id。
	if seg.Kind().String() != declared || (doc.ID != "" && doc.ID != seg.ID()) || misusesCapID(seg) {
		return nil, &TypeMismatchError{ID: doc.ID, Declared: declared, Actual: seg.Kind().String()}
	}
	return seg, nil
}

func misusesCapID(seg Segment) bool {
	return seg.Kind() == KindContent && (seg.ID() == StartCapID || seg.ID() == EndCapID)
}

// FromDocument 由结构化文档重建 Strip。任何一个 segment 出错都会整体失败，不返回半成品。
func FromDocument(doc *Document) (*Strip, error) {
	s := New()
	if doc == nil {
		return s, nil
	}
	s.SetHeight(doc.Height)
	if doc.ContentCellWidth != 0 {
		if !(doc.ContentCellWidth > 0) {
			return nil, ErrNonPositiveWidth
		}
		s.contentCellWidth = roundMM(doc.ContentCellWidth)
	}
	if doc.Settings != nil {
		settings, err := settingsFromDocument(*doc.Settings)
		if err != nil {
			return nil, err
		}
		s.settings = settings
	}

	seen := make(map[string]struct{}, len(doc.Segments))
	for _, sd := range doc.Segments {
		seg, err := SegmentFromDocument(sd)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[seg.ID()]; dup {
			return nil, &DuplicateSegmentError{ID: seg.ID()}
		}
		seen[seg.ID()] = struct{}{}

		switch seg.Kind() {
		case KindStart:
			s.start = seg.(*StartCap)
		case KindContent:
			s.cells = append(s.cells, seg.(*ContentCell))
		case KindEnd:
			s.end = seg.(*EndCap)
		}
	}
	return s, nil
}

func settingsDocument(s Settings) *SettingsDocument {
	return &SettingsDocument{
		PaperSize: string(s.PaperSize),
		PageMargins: &MarginsDocument{
			Top:    s.Margins.Top,
			Right:  s.Margins.Right,
			Bottom: s.Margins.Bottom,
			Left:   s.Margins.Left,
		},
		DefaultFontName:        s.FontName,
		DefaultFontSize:        s.FontSize,
		DefaultTextColor:       s.TextColor.Hex(),
		DefaultBackgroundColor: s.BackgroundColor.Hex(),
		RotationAngle:          s.Rotation,
	}
}

func settingsFromDocument(doc SettingsDocument) (Settings, error) {
	out := DefaultSettings()
	if doc.PaperSize != "" {
		p, err := ParsePaperSize(doc.PaperSize)
		if err != nil {
			return Settings{}, err
		}
		out.PaperSize = p
	}
	if m := doc.PageMargins; m != nil {
		out.Margins = PageMargins{Top: m.Top, Right: m.Right, Bottom: m.Bottom, Left: m.Left}
	}
	if doc.DefaultFontName != "" {
		out.FontName = doc.DefaultFontName
	}
	if doc.DefaultFontSize > 0 {
		out.FontSize = doc.DefaultFontSize
	}
	var err error
	if out.TextColor, err = colorOr(doc.DefaultTextColor, Black); err != nil {
		return Settings{}, err
	}
	if out.BackgroundColor, err = colorOr(doc.DefaultBackgroundColor, White); err != nil {
		return Settings{}, err
	}
	out.Rotation = doc.RotationAngle
	return out, nil
}

func colorOr(value string, fallback Color) (Color, error) {
	if value == "" {
		return fallback, nil
	}
	return ParseHex(value)
}
