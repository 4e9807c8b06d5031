package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB - ограничение для тестового корпуса
	maxFuzzInput = 1 << 16
)

var pythonSeeds = []string{
	"",
	"x = 1\n",
	"def f(a, *args, b=2, **kw):\n    return a\n",
	"class C(Base):\n    '''doc'''\n    def m(self):\n        pass\n",
	"if x:\n\ty = 1\nelse:\n        y = 2\n",
	"s = '''multi\nline'''\n",
	"t = f'{x!r:>10}' + rb'\\x00'\n",
	"y = f(1,\n      'ab')  # comment\n",
	"x = (1 +\n",
	"x = \\\n    1\n",
	"async def g():\n    async with a as b:\n        await b\n",
	"lambda x: [i for i in x if i]\n",
	"# flake8: noqa\nimport os\n",
	"\ufeffprint('bom')\n",
	"# -*- coding: latin-1 -*-\nx = '\xe9'\n",
	"  x = 1\n y = 2\n",
	"d = {**a, 'k': [1, 2, (3,)]}\n",
	"x = 1 if y else 2; del x\n",
	"@decorator\ndef h(): ...\n",
	"try:\n    pass\nexcept (A, B) as e:\n    raise\nfinally:\n    pass\n",
	"x = 1\n   ",
	"   ",
	"x = 1\n# end",
	"if x:\n    y = 1\n    ",
	"x = 1 + \\\r\n    2\r\n",
	"s = \"\"\"a\r\nb\"\"\"\r\n",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range pythonSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.py файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".py" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) > maxSeedBytes {
		return append([]byte(nil), src[:maxSeedBytes]...)
	}
	return src
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}
