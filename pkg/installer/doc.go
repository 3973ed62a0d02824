// Package installer scaffolds a BackBee project: its cache, log and data
// directories and its bootstrap, doctrine and services configuration.
//
// # Steps
//
// An Installer value is one run. Its steps can be called one by one, as an
// outer build tool does, or together through Install:
//
//   - BuildStructure: cache, log and data directories, plus bbapp.*.dir in services.yml
//   - CollectParameters: runs the Collector to obtain parameters.yml
//   - BuildBootstrap: bootstrap.yml (debug, container dump directory)
//   - BuildDoctrineConfig: doctrine.yml (dbal connection)
//   - BuildServicesConfig: secret_key in services.yml
//   - Clear: removes the raw parameters.yml
//
// Run executes one of them by step name, records its duration and outcome
// in the bbinstall_step_* Prometheus metrics and adds a failure to the
// Result's errors.
//
// Every step is idempotent. Directories and configuration files that exist
// are left alone; services.yml only gains keys it does not have yet.
// Generators need the parameter bag: it is filled by CollectParameters, or
// by LoadParameters from an existing parameters.yml, and without it the
// generators do nothing.
//
// # Usage
//
//	inst, err := installer.New(
//	    installer.WithRoot(paths.NewRoot("/srv/site")),
//	    installer.WithOptions(opts),
//	    installer.WithCollector(parameters.NewPromptCollector()),
//	)
//	if err != nil {
//	    return err
//	}
//	if err := inst.Install(ctx); err != nil {
//	    return err
//	}
//	fmt.Println(inst.Result().Files)
package installer
