package constants

const (
	// UploadFormField 上传接口的文件字段名
	UploadFormField = "file"
	// CourseCountFormField 推荐课程数量字段名
	CourseCountFormField = "course_count"

	// PDFContentType PDF 的 MIME 类型
	PDFContentType = "application/pdf"

	// ArchiveObjectPrefix 归档对象键前缀，格式: resumes/{analysisID}/{basename}
	ArchiveObjectPrefix = "resumes"

	// AdminKeyHeader 管理端鉴权请求头
	AdminKeyHeader = "X-Admin-Key"
	// RequestIDHeader 请求 ID 响应头
	RequestIDHeader = "X-Request-ID"
)
