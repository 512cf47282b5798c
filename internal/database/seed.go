package database

import (
	"context"

	"go.uber.org/zap"

	"github.com/zaqqye/weld_backend_v1/internal/models"
	"github.com/zaqqye/weld_backend_v1/internal/repository"
)

// SeedDemoWelds fills an empty store with a handful of joints for two construction objects.
func SeedDemoWelds(ctx context.Context, repo repository.WeldRepository, log *zap.Logger) error {
	_, total, err := repo.ListWelds(ctx, repository.WeldFilter{Limit: 1})
	if err != nil {
		return err
	}
	if total > 0 {
		return nil
	}

	gas := "Газопровод Ду 500 участок 1"
	oil := "Нефтепровод НПС-3"
	contractor := "ООО СтройМонтаж"
	customer := "ПАО Газпром"
	date := "2024-01-15"
	done := models.StatusDone
	ok := models.ConclusionOK
	repair := models.ConclusionRepair
	s2 := 10.0

	welds := []models.Weld{
		{ObjectName: &gas, Contractor: &contractor, Customer: &customer, WeldNumber: "ШС-001", Diameter: 219, Thickness1: 8,
			QualityLevel: models.QualityB, WeldDate: &date, WeldingProcess: models.ProcessSMAWGMAW, Joint: models.JointButt,
			TestMethods: []models.TestMethod{models.MethodVT, models.MethodUT}, WeldStatus: &done, Conclusion: &ok},
		{ObjectName: &gas, Contractor: &contractor, Customer: &customer, WeldNumber: "ШС-002", Diameter: 219, Thickness1: 8, Thickness2: &s2,
			QualityLevel: models.QualityB, WeldingProcess: models.ProcessGTAW, Joint: models.JointButt,
			TestMethods: []models.TestMethod{models.MethodVT, models.MethodRT}, Conclusion: &repair},
		{ObjectName: &oil, Contractor: &contractor, WeldNumber: "К-17", Diameter: 530, Thickness1: 12,
			QualityLevel: models.QualityA, WeldingProcess: models.ProcessSAW, Joint: models.JointFilletLap,
			TestMethods: []models.TestMethod{}},
	}
	for i := range welds {
		if err := repo.CreateWeld(ctx, &welds[i]); err != nil {
			return err
		}
	}
	log.Info("seeded demo welds", zap.Int("count", len(welds)))
	return nil
}
