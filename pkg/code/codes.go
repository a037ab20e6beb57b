package code

// Registered business codes.
var (
	Success = NewSuss(0, lang{en: "Success", zh_cn: "成功"})

	ErrorServerInternal = NewError(10000, lang{en: "Internal server error", zh_cn: "服务器内部错误"})
	ErrorInvalidParams  = NewError(10001, lang{en: "Invalid request parameters", zh_cn: "请求参数错误"})
	ErrorNotFoundAPI    = NewError(10404, lang{en: "API route not found", zh_cn: "接口不存在"})

	ErrorDocumentRead     = NewError(20001, lang{en: "Could not read document content", zh_cn: "无法读取文档内容"})
	ErrorDocumentEmpty    = NewError(20002, lang{en: "Document content is empty", zh_cn: "文档内容为空"})
	ErrorDocumentNotFound = NewError(20003, lang{en: "Document ID not found", zh_cn: "文档 ID 不存在"})

	ErrorRevisionStore = NewError(20100, lang{en: "Failed to store document revision", zh_cn: "存储文档修订失败"})
	ErrorRevisionQuery = NewError(20101, lang{en: "Failed to query revision history", zh_cn: "查询修订历史失败"})
)
