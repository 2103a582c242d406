package utils

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

func GenerateRequestID() string {
	return uuid.NewString()
}

func GenerateCaseID() string {
	return uuid.NewString()
}

// GenerateObjectName builds a collision-safe object-storage key for an
// uploaded evidence document, grouping objects by kind and patient.
func GenerateObjectName(kind, patientID, filename string) string {
	timestamp := time.Now().UTC().Format("20060102_150405.000000000")
	return fmt.Sprintf("%s/%s/%s_%s", kind, patientID, timestamp, filename)
}
