// Package project 负责 .jlp 工程文件的读写。文件是一个 JSON 信封，
// label_strip 字段保存标签条的结构化文档。
package project

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ByLCY/jackfield/atomicfile"
	"github.com/ByLCY/jackfield/strip"
)

const (
	Extension   = ".jlp"
	Version     = "1.0"
	Application = "Jackfield Labeler"
)

// Envelope 是工程文件的顶层结构。
type Envelope struct {
	Version     string          `json:"version" validate:"required,startswith=1."`
	Application string          `json:"application" validate:"required,jackfield_app"`
	LabelStrip  *strip.Document `json:"label_strip" validate:"required"`
	Metadata    Metadata        `json:"metadata"`
}

// Metadata 是附加信息，读取时全部可缺省。
type Metadata struct {
	CreatedBy         string `json:"created_by,omitempty"`
	FileFormatVersion string `json:"file_format_version,omitempty"`
	ProjectID         string `json:"project_id,omitempty"`
}

// Project 是内存中的工程：一条标签条加上稳定的工程 ID。
type Project struct {
	ID    uuid.UUID
	Strip *strip.Strip
}

// New 为标签条创建一个新工程并分配 ID。
func New(s *strip.Strip) *Project {
	return &Project{ID: uuid.New(), Strip: s}
}

// NormalizePath 在缺少扩展名时追加 .jlp（不区分大小写）。
func NormalizePath(path string) string {
	if strings.HasSuffix(strings.ToLower(path), Extension) {
		return path
	}
	return path + Extension
}

// Encode 把工程写成两空格缩进、不转义非 ASCII 字符的 JSON。
func Encode(w io.Writer, p *Project) error {
	if p == nil || p.Strip == nil {
		return errors.New("工程或标签条为空")
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	env := Envelope{
		Version:     Version,
		Application: Application,
		LabelStrip:  p.Strip.Document(),
		Metadata: Metadata{
			CreatedBy:         Application,
			FileFormatVersion: Version,
			ProjectID:         p.ID.String(),
		},
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(&env)
}

// Decode 读取并校验信封，然后重建标签条。
func Decode(r io.Reader) (*Project, error) {
	var env Envelope
	if err := json.NewDecoder(r).Decode(&env); err != nil {
		return nil, fmt.Errorf("解析工程 JSON 失败: %w", err)
	}
	if err := validateEnvelope(&env); err != nil {
		return nil, err
	}
	s, err := strip.FromDocument(env.LabelStrip)
	if err != nil {
		return nil, fmt.Errorf("重建标签条失败: %w", err)
	}
	id, err := uuid.Parse(env.Metadata.ProjectID)
	if err != nil {
		// 旧文件没有 project_id
		id = uuid.New()
	}
	return &Project{ID: id, Strip: s}, nil
}

// Save 把工程原子地写到 path（必要时追加 .jlp 并创建父目录），返回实际写入的路径。
func Save(p *Project, path string) (string, error) {
	path = NormalizePath(path)
	var buf bytes.Buffer
	if err := Encode(&buf, p); err != nil {
		return "", err
	}
	if err := atomicfile.Write(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("写入工程 %s 失败: %w", path, err)
	}
	return path, nil
}

// Load 读取工程文件。任何失败都返回 (nil, *LoadError)，即“未加载”。
func Load(path string) (*Project, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close()

	p, err := Decode(f)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return p, nil
}

// FileInfo 是不构建标签条就能读出的工程概要。
type FileInfo struct {
	Path             string
	Version          string
	Application      string
	Size             int64
	ModTime          time.Time
	ProjectID        string
	HasStrip         bool
	StripHeight      float64
	ContentCellWidth float64
	SegmentCount     int
}

type infoDocument struct {
	Version     *string `json:"version"`
	Application *string `json:"application"`
	LabelStrip  *struct {
		Height           float64           `json:"height"`
		ContentCellWidth float64           `json:"content_cell_width"`
		Segments         []json.RawMessage `json:"segments"`
	} `json:"label_strip"`
	Metadata Metadata `json:"metadata"`
}

// Info 读取工程概要；缺失的 version/application 以 "Unknown" 表示。
func Info(path string) (*FileInfo, error) {
	st, err := os.Stat(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	var doc infoDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("解析工程 JSON 失败: %w", err)}
	}

	info := &FileInfo{
		Path:        path,
		Version:     "Unknown",
		Application: "Unknown",
		Size:        st.Size(),
		ModTime:     st.ModTime(),
		ProjectID:   doc.Metadata.ProjectID,
	}
	if doc.Version != nil {
		info.Version = *doc.Version
	}
	if doc.Application != nil {
		info.Application = *doc.Application
	}
	if ls := doc.LabelStrip; ls != nil {
		info.HasStrip = true
		info.StripHeight = ls.Height
		info.ContentCellWidth = ls.ContentCellWidth
		info.SegmentCount = len(ls.Segments)
	}
	return info, nil
}

// IsProjectFile 判断 path 是否是本程序的工程文件（扩展名 + 应用名）。
func IsProjectFile(path string) bool {
	if !strings.EqualFold(filepath.Ext(path), Extension) {
		return false
	}
	info, err := Info(path)
	return err == nil && info.Application == Application
}
