package services

import (
	"os"
	"testing"

	"github.com/MuhamadAsim/admin-library-haven-sub000/configs"
)

func TestMain(m *testing.M) {
	configs.LoadEnvValues()
	os.Exit(m.Run())
}
