package shared

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/glog"
)

// GetProjectRootDir returns the root directory of the project, found by
// walking up from the working directory until the project's go.mod appears.
func GetProjectRootDir() string {
	workingDir, err := os.Getwd()
	if err != nil {
		glog.Fatal(err)
	}

	dirs := strings.Split(workingDir, "/")
	var goModPath string
	var rootPath string
	for _, d := range dirs {
		rootPath = rootPath + "/" + d
		goModPath = filepath.Join(rootPath, "go.mod")
		goModFile, err := os.ReadFile(goModPath)
		if err != nil { // if the file doesn't exist, continue searching
			continue
		}
		// The project root directory is obtained based on the assumption that the module
		// name, "github.com/Evolveum/integration-catalog-sub000", is contained in the
		// 'go.mod' file. Should the module name change in the code repo then it needs to
		// be changed here too.
		if strings.Contains(string(goModFile), "github.com/Evolveum/integration-catalog-sub000") {
			break
		}
	}
	return rootPath
}
