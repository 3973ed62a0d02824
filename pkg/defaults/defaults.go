package defaults

import (
	"os"
)

// Option keys.
const (
	OptPrompt            = "prompt"
	OptGenerateStructure = "generate-structure"
	OptCacheDir          = "backbee-cache-dir"
	OptLogDir            = "backbee-log-dir"
	OptDataDir           = "backbee-data-dir"
	OptDataMediaDir      = "backbee-data-media-dir"
	OptDataStorageDir    = "backbee-data-storage-dir"
	OptDataTmpDir        = "backbee-data-tmp-dir"
)

// Options returns a fresh copy of the default option set.
func Options() map[string]any {
	return map[string]any{
		OptPrompt:            true,
		OptGenerateStructure: true,
		OptCacheDir:          "cache",
		OptLogDir:            "log",
		OptDataDir:           "./repository/Data",
		OptDataMediaDir:      "Media",
		OptDataStorageDir:    "Storage",
		OptDataTmpDir:        "Tmp",
	}
}

// Repository layout, relative to the project root.
const (
	ConfigDir         = "repository/Config"
	BootstrapFile     = "bootstrap.yml"
	DoctrineFile      = "doctrine.yml"
	ServicesFile      = "services.yml"
	ParametersFile    = "parameters.yml"
	ParametersDist    = "parameters.yml.dist"
	ComposerFile      = "composer.json"
	ContainerDumpDir  = "container"
	ParametersRootKey = "parameters"
)

// Directory and file modes.
const (
	DirMode            os.FileMode = 0o755
	DataSubdirMode     os.FileMode = 0o777
	ConfigFileMode     os.FileMode = 0o644
	ParametersFileMode os.FileMode = 0o600
	ScaffoldUmask                  = 0
	EnvPrefix                      = "BACKBEE_"
	LogLevelEnvName                = "LOG_LEVEL"
)

// Parameter bag keys.
const (
	ParamDebug                  = "debug"
	ParamCacheAutogenerate      = "cache_autogenerate"
	ParamContainerDumpDirectory = "container_dump_directory"
	ParamDatabaseDriver         = "database_driver"
	ParamDatabaseHost           = "database_host"
	ParamDatabasePort           = "database_port"
	ParamDatabaseName           = "database_dbname"
	ParamDatabaseUser           = "database_user"
	ParamDatabasePassword       = "database_password"
	ParamDatabaseCharset        = "database_charset"
	ParamDatabaseCollation      = "database_collation"
	ParamSecretKey              = "secret_key"
)

// ParameterTemplate is used when the project ships no parameters.yml.dist.
// Key order is the prompt order.
const ParameterTemplate = `parameters:
    debug: false
    cache_autogenerate: true
    container_dump_directory: ~
    database_driver: pdo_mysql
    database_host: localhost
    database_port: 3306
    database_dbname: backbee
    database_user: root
    database_password: ~
    database_charset: utf8
    database_collation: utf8_general_ci
    secret_key: ~
`
