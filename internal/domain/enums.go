package domain

// PlanName identifies one of the fixed subscription tiers.
type PlanName string

const (
	PlanStarter      PlanName = "starter"
	PlanProfessional PlanName = "professional"
	PlanBusiness     PlanName = "business"
)

// ExecutionStrategy determines how backends are invoked for a plan.
type ExecutionStrategy string

const (
	// StrategySingle invokes the designated primary backend only.
	StrategySingle ExecutionStrategy = "single"
	// StrategyRouted picks one of two backends by routing policy.
	StrategyRouted ExecutionStrategy = "routed"
	// StrategyEnsemble invokes every configured backend in parallel.
	StrategyEnsemble ExecutionStrategy = "ensemble"
)

// ConfidenceTier is the qualitative trust level of a consensus outcome.
type ConfidenceTier string

const (
	ConfidenceHigh   ConfidenceTier = "high"
	ConfidenceMedium ConfidenceTier = "medium"
	ConfidenceLow    ConfidenceTier = "low"
)

// FileType represents the accepted document types.
type FileType string

const (
	FileTypePDF  FileType = "pdf"
	FileTypeJPG  FileType = "jpg"
	FileTypePNG  FileType = "png"
	FileTypeGIF  FileType = "gif"
	FileTypeDOC  FileType = "doc"
	FileTypeDOCX FileType = "docx"
)

// AllowedContentTypes maps MIME content types to FileType.
var AllowedContentTypes = map[string]FileType{
	"application/pdf":    FileTypePDF,
	"image/jpeg":         FileTypeJPG,
	"image/png":          FileTypePNG,
	"image/gif":          FileTypeGIF,
	"application/msword": FileTypeDOC,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": FileTypeDOCX,
}
