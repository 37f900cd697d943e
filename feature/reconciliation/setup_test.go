package reconciliation_test

import (
	"testing"

	"bom-merger/core/config"
	"bom-merger/core/database"
	"bom-merger/core/storage/mocks"
	"bom-merger/feature/mapping"
	"bom-merger/feature/reconciliation"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testBucket = "bom"

const partsCSV = "Customer: ACME,,,\n" +
	"Ref Des,Part Number,Description,Value\n" +
	"R1-R3,RES-10K,Resistor,10k\n" +
	"C1,CAP-100N,Capacitor,100n\n"

const placementCSV = "Designator,Layer,Mid X,Mid Y,Rotation\n" +
	"R1,Top,1,10,0\n" +
	"R2,Bottom,2,10,90\n" +
	"R3,Top,3,10,0\n" +
	"R1,Top,1,110,0\n" +
	"TP1,Top,0,0,0\n" +
	"U9,Top,5,5,0\n"

var testDefaults = config.MappingConfig{
	PartsDesignator:     "Ref Des",
	PlacementDesignator: "Designator",
	Layer:               "Layer",
	X:                   "Mid X",
	Y:                   "Mid Y",
	Rotation:            "Rotation",
	PartNumber:          "Part Number",
	Description:         "Description",
	Value:               "Value",
	Delimiter:           "comma",
	SuppressPrefixes:    "FID,TP,MH",
}

func newTestService(t *testing.T) (*reconciliation.Service, *mocks.Client) {
	t.Helper()

	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)

	profileRepo := mapping.NewRepository(db)
	require.NoError(t, profileRepo.Migrate())
	profiles := mapping.NewService(profileRepo, testDefaults, zap.NewNop())

	repo := reconciliation.NewRepository(db)
	require.NoError(t, repo.Migrate())

	client := new(mocks.Client)
	client.On("PutObject", mock.Anything, testBucket, mock.AnythingOfType("string"), mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, nil).Maybe()

	return reconciliation.NewService(repo, profiles, client, testBucket, zap.NewNop()), client
}

func testInputs() (reconciliation.Input, reconciliation.Input) {
	return reconciliation.Input{Name: "bom.csv", Data: []byte(partsCSV)},
		reconciliation.Input{Name: "xy.csv", Data: []byte(placementCSV)}
}
