package main

import (
	"fmt"
	"os"

	"github.com/MKhiriev/go-backend-kit/internal/cli"
	"github.com/MKhiriev/go-backend-kit/models"
)

var buildVersion string

func main() {
	build := models.NewBuildInfo(buildVersion, "", "")
	if err := cli.NewRootCmd(build.Version()).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
