package core

import glog "github.com/goliatone/go-logger/glog"

var (
	_ Hook       = HookFunc(nil)
	_ ClonerHook = HookFunc(nil)

	_ ConfigProvider  = (*CfgxConfigProvider)(nil)
	_ OptionsResolver = GoOptionsResolver{}
	_ RawConfigLoader = StaticRawConfigLoader{}

	_ Logger         = glog.Nop()
	_ LoggerProvider = glog.ProviderFromLogger(glog.Nop())
)
