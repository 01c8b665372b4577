package dyopen

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"
)

// ParseOptions parses command line flags; flags override values from the options file.
func ParseOptions(ctx context.Context, args []string) (*Options, error) {
	options := &Options{}
	if _, err := flags.ParseArgs(options, args); err != nil {
		return nil, err
	}
	if options.OptionsURL == "" {
		return options, nil
	}
	ret, err := LoadOptions(ctx, options.OptionsURL)
	if err != nil {
		return nil, err
	}
	if _, err = flags.ParseArgs(ret, args); err != nil {
		return nil, err
	}
	return ret, nil
}

// Run starts the bridge process
func Run(args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	options, err := ParseOptions(ctx, args)
	if err != nil {
		return err
	}
	service, err := New(ctx, options)
	if err != nil {
		return err
	}
	defer func() {
		if err := service.Close(context.WithoutCancel(ctx)); err != nil {
			service.Logger().Warn("failed to close service", zap.Error(err))
		}
	}()
	return service.Serve(ctx)
}
