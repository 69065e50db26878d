package fx

import (
	"testing"

	"go.uber.org/fx"
)

func TestApplicationGraph(t *testing.T) {
	err := fx.ValidateApp(
		ConfigModule,
		StoreModule,
		SettingsModule,
		ScraperModule,
		AIModule,
		SearchModule,
		CollaboratorModule,
		CoreModule,
		ChatModule,
		NotificationModule,
		ServerModule,
		fx.NopLogger,
	)
	if err != nil {
		t.Fatalf("dependency graph is incomplete: %v", err)
	}
}
