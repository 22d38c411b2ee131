// See the file LICENSE for copyright and licensing information.

package fuse

func localVolume(conf *mountConfig) error {
	return nil
}

func volumeName(name string) MountOption {
	return dummyOption
}

func noAppleDouble(conf *mountConfig) error {
	return nil
}

func noAppleXattr(conf *mountConfig) error {
	return nil
}

func daemonTimeout(name string) MountOption {
	return dummyOption
}
