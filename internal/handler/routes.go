package handler

import "github.com/gin-gonic/gin"

// Handlers bundles every HTTP handler of the node.
type Handlers struct {
	Students   *StudentHandler
	Staff      *StaffHandler
	Fees       *FeeHandler
	Academics  *AcademicHandler
	Timetables *TimetableHandler
	Archives   *ArchiveHandler
	Settings   *SettingsHandler
	Sync       *SyncHandler
	Transfers  *TransferHandler
}

// RegisterRoutes mounts all endpoints under the given group.
func (h Handlers) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/students", h.Students.List)
	rg.POST("/students", h.Students.Create)
	rg.GET("/students/:id", h.Students.Get)
	rg.PUT("/students/:id", h.Students.Update)
	rg.DELETE("/students/:id", h.Students.Delete)
	rg.GET("/students/:id/financials", h.Fees.Financials)
	rg.GET("/students/:id/report", h.Academics.ReportCard)
	rg.GET("/students/:id/report/pdf", h.Transfers.ReportCardPDF)
	rg.GET("/students/:id/remarks", h.Academics.GetRemark)

	rg.GET("/teachers", h.Staff.ListTeachers)
	rg.POST("/teachers", h.Staff.CreateTeacher)
	rg.PUT("/teachers/:id", h.Staff.UpdateTeacher)
	rg.DELETE("/teachers/:id", h.Staff.DeleteTeacher)

	rg.GET("/staff", h.Staff.ListStaff)
	rg.POST("/staff", h.Staff.CreateStaff)
	rg.PUT("/staff/:id", h.Staff.UpdateStaff)
	rg.DELETE("/staff/:id", h.Staff.DeleteStaff)

	rg.GET("/payments", h.Fees.List)
	rg.POST("/payments", h.Fees.Record)
	rg.DELETE("/payments/:id", h.Fees.Void)

	rg.POST("/assessments", h.Academics.Record)
	rg.DELETE("/assessments/:id", h.Academics.Void)
	rg.PUT("/remarks", h.Academics.UpsertRemark)
	rg.GET("/analysis", h.Academics.Analysis)
	rg.GET("/analysis/top", h.Academics.TopRanking)
	rg.GET("/analysis/csv", h.Transfers.ClassAnalysisCSV)

	rg.GET("/timetables", h.Timetables.List)
	rg.POST("/timetables", h.Timetables.Create)
	rg.DELETE("/timetables/:id", h.Timetables.Delete)

	rg.GET("/archives", h.Archives.List)
	rg.POST("/archives", h.Archives.Create)
	rg.GET("/archives/:id", h.Archives.Get)

	rg.GET("/settings", h.Settings.Get)
	rg.PUT("/settings", h.Settings.Update)

	rg.POST("/sync/push", h.Sync.Push)
	rg.POST("/sync/pull", h.Sync.Pull)
	rg.GET("/sync/status", h.Sync.Status)
	rg.GET("/sync/snapshots/:token", h.Sync.Snapshot)

	rg.GET("/transfer/export/:scope", h.Transfers.Export)
	rg.POST("/transfer/import/:scope", h.Transfers.Import)
}
