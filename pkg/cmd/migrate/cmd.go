package migrate

import (
	"github.com/golang/glog"
	"github.com/spf13/cobra"

	"github.com/Evolveum/integration-catalog-sub000/pkg/db"
	"github.com/Evolveum/integration-catalog-sub000/pkg/environments"
)

// migrate sub-command handles running migrations
func NewMigrateCommand(env *environments.Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run integration catalog data migrations",
		Long:  "Run integration catalog data migrations",
		Run: func(cmd *cobra.Command, args []string) {
			env.MustInvoke(func(migrations []*db.Migration) {
				glog.Infoln("Migration starting")
				for _, migration := range migrations {
					migration.Migrate()
				}
				glog.Infoln("Migration done")
			})
		},
	}
	return cmd
}
