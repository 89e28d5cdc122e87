package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
)

// Document upload constraints.
const (
	MimePDF         = "application/pdf"
	MimeImage       = "image/"
	MimeOctetStream = "application/octet-stream"
)

var AllowedDocumentExtensions = []string{".pdf", ".png", ".jpg", ".jpeg", ".doc", ".docx", ".txt"}
