package processor

import (
	"errors"
	"fmt"
)

// 定义基础错误类型
var (
	ErrUnsupportedFile  = errors.New("仅支持PDF格式的简历")
	ErrSaveUploadFailed = errors.New("保存上传文件失败")
	ErrExtractionFailed = errors.New("简历解析失败")
	ErrPersistFailed    = errors.New("保存分析结果失败")
	ErrStoreNotInit     = errors.New("结果存储未初始化")
)

// AnalysisError 包含详细错误信息的自定义错误
type AnalysisError struct {
	AnalysisID string
	Op         string
	BaseErr    error
	Detail     string
}

func (e *AnalysisError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s (操作:%s, ID:%s): %s", e.BaseErr, e.Op, e.AnalysisID, e.Detail)
	}
	return fmt.Sprintf("%s (操作:%s, ID:%s)", e.BaseErr, e.Op, e.AnalysisID)
}

func (e *AnalysisError) Unwrap() error {
	return e.BaseErr
}

// Is 实现 errors.Is 接口以支持错误比较
func (e *AnalysisError) Is(target error) bool {
	return errors.Is(e.BaseErr, target)
}

// 错误构造函数
func NewSaveUploadError(id, detail string) error {
	return &AnalysisError{AnalysisID: id, Op: "save_upload", BaseErr: ErrSaveUploadFailed, Detail: detail}
}

func NewExtractionError(id, detail string) error {
	return &AnalysisError{AnalysisID: id, Op: "extract", BaseErr: ErrExtractionFailed, Detail: detail}
}

func NewPersistError(id, detail string) error {
	return &AnalysisError{AnalysisID: id, Op: "persist", BaseErr: ErrPersistFailed, Detail: detail}
}
