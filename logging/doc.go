// Package logging rotates a program's log between sessions and installs a
// process-wide slog logger that writes to the terminal and a file at once.
//
// # Rotation
//
// Each session logs to a single active file, {Folder}/latest.log by default.
// Before a new session starts, [Rotate] gzips the previous session's file into
// an archive named after the time that file was created, then removes it:
//
//	logs/
//	  latest.log
//	  myapp_2024-03-09_14-05-07.log.gz
//	  myapp_2024-03-08_09-12-44.log.gz
//
// The "myapp_" prefix comes from [Config.PackageName] and is omitted when that
// is empty. Each archive holds one gzip member whose header stores the
// archive's name without ".gz". Use [ListArchives] and [ReadArchive] to find
// and decompress them later.
//
// # Initialization
//
// [Init] installs the logger with [slog.SetDefault]. It can succeed once per
// process; later calls fail with a [dablenutil.KindLogging] error and leave
// the first logger in place. Rotation is a separate step so callers decide
// when it happens. The usual order is:
//
//	cfg := logging.NewConfig("logs").WithPackageName("myapp")
//	if _, err := logging.Rotate(cfg); err != nil {
//	    return err
//	}
//	closeLog, err := logging.Init(cfg)
//	if err != nil {
//	    return err
//	}
//	defer closeLog()
//
//	slog.Info("started", "version", version)
//
// [InitWithRotation] does both.
//
// # Output
//
// Both sinks write one line per record:
//
//	14:05:07 [INFO] started version=1.2.0
//	14:05:09 [ERROR] (goroutine 12) request failed status=502
//
// The terminal sink writes to stderr and is colorized when stderr is a
// terminal (see [ColorMode]). The file sink is always plain text. Source
// locations are not recorded; the goroutine id is added to error records
// only.
//
// # Levels
//
// Each sink has its own [Level]: Off, Error, Warn, Info, Debug or Trace.
// Trace records are logged at [TraceLevel]:
//
//	slog.Log(ctx, logging.TraceLevel, "raw frame", "bytes", n)
package logging
