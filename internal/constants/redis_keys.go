package constants

import "fmt"

// Redis Key 前缀和格式常量
// 使用统一的命名规范: app:{module}:{entity}:{unique_id}
const (
	// AppPrefix 是所有Redis Key的统一应用前缀
	AppPrefix = "app"

	// ResumeModulePrefix 简历模块
	ResumeModulePrefix = "resume"

	// EntityExtraction 抽取结果实体
	EntityExtraction = "extraction"

	// KeyResumeExtraction 简历抽取结果缓存 (STRING, JSON)
	// 格式: app:resume:extraction:{nlpModel}:{fileMD5}
	KeyResumeExtraction = AppPrefix + ":" + ResumeModulePrefix + ":" + EntityExtraction + ":%s:%s"
)

// ExtractionCacheKey 生成抽取结果缓存键。不同抽取模型的结果互不复用
func ExtractionCacheKey(nlpModel, fileMD5 string) string {
	return fmt.Sprintf(KeyResumeExtraction, nlpModel, fileMD5)
}
