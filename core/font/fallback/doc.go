/*
Package fallback resolves language tags to ordered sets of fonts.

Which fonts to use for which language is configured declaratively, as a tree
of languages and font variants:

   <VirtualFont>
     <Font lang="ja:zh">
       <Ref>assets://fonts/latin.ttf</Ref>
       <Group>
         <Ref>system://NotoSansCJK-Regular.ttc</Ref>
         <Ref>assets://fonts/cjk.ttf</Ref>
       </Group>
     </Font>
     <Font lang="default">
       <Ref>assets://fonts/latin.ttf</Ref>
     </Font>
   </VirtualFont>

A direct reference contributes its font if it can be loaded. A group
contributes the first of its members which can be loaded. The resulting
FontSet is the fallback chain for a piece of text: a layout engine tries the
fonts in order until every character has a glyph.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package fallback

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'lyt.fonts'
func tracer() tracing.Trace {
	return tracing.Select("lyt.fonts")
}
